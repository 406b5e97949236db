// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package document

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/doc"
)

var documentStacksBaseCmd = cobra.Command{
	Use:   "stacks path",
	Short: "Generates documentation for the stack tree at the supplied path.",
	Long:  `Generates documentation for the stack tree at the supplied path.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sl := samlib.NewSamLib(nil)
		if err := sl.Init(cmd.Context(), os.DirFS(args[0])); err != nil {
			cmd.PrintErrf("%s document error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
		if err := doc.StackTreeMd(os.Stdout, sl); err != nil {
			cmd.PrintErrf("%s document error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}
