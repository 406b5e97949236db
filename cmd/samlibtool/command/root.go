// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sambuild/samlib/cmd/samlibtool/command/check"
	"github.com/sambuild/samlib/cmd/samlibtool/command/document"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "samlibtool",
	Version: version,
	Short:   "A cli tool for working with nested serverless stack templates",
	Long: `A cli tool for working with nested serverless stack templates.

This tool can:

- Validate a template directory: parameter indirections, nested stack locations and the parameters passed into them.
- Produce documentation for the stack tree of a template directory.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(&check.CheckCmd)
	rootCmd.AddCommand(&document.DocumentBaseCmd)
}
