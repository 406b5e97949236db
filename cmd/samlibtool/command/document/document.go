// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package document

import (
	"os"

	"github.com/spf13/cobra"
)

// DocumentBaseCmd is the base command for generating documentation.
var DocumentBaseCmd = cobra.Command{
	Use:   "document",
	Short: "Generates documentation for template directories.",
	Long:  `Produces documentation for template directories, currently only the stack tree is supported.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.PrintErrf("%s document command: missing required child command\n", cmd.ErrPrefix())
		cmd.Usage() // nolint: errcheck
		os.Exit(1)
	},
}

func init() {
	DocumentBaseCmd.AddCommand(&documentStacksBaseCmd)
}
