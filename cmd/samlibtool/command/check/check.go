// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package check

import (
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/environment"
	"github.com/sambuild/samlib/internal/tools/checker"
	"github.com/sambuild/samlib/internal/tools/checks"
)

var (
	checkCodeFlag bool
	baseDirFlag   string
)

// CheckCmd represents the check command.
var CheckCmd = cobra.Command{
	Use:   "check [flags] dir|url",
	Short: "Validate a template directory.",
	Long: `Validate a template directory, supplied as a local path or a go-getter URL.

Checks that every parameter indirection resolves within its document, that
every nested stack location points at an existing template, and that the
parameters passed into each nested stack match the child document.
With --code, additionally checks that code and content locations exist when
resolved against the base directory.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := fetchSource(cmd, args[0])
		if err != nil {
			cmd.PrintErrf("%s check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		sl := samlib.NewSamLib(nil)
		if err := sl.Init(cmd.Context(), source); err != nil {
			cmd.PrintErrf("%s check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		chk := checker.NewValidator(
			checks.CheckAllReferencesAreDeclared(sl),
			checks.CheckNestedLocationsExist(sl),
			checks.CheckNestedParameters(sl),
			checks.CheckAllLayersAreReferenced(sl),
		)
		if checkCodeFlag {
			chk = chk.AddChecks(checks.CheckCodeLocationsExist(sl, baseDirFlag))
		}
		if err := chk.Validate(); err != nil {
			cmd.PrintErrf("%s template check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}

func init() {
	CheckCmd.Flags().BoolVar(&checkCodeFlag, "code", false, "also check that code and content locations exist")
	CheckCmd.Flags().StringVar(&baseDirFlag, "base-dir", environment.BuildBaseDir(), "base directory for resolving code and content locations")
}

// fetchSource returns the template source as an fs.FS. Local directories are
// used in place, anything else is treated as a go-getter URL.
func fetchSource(cmd *cobra.Command, arg string) (fs.FS, error) {
	var ref samlib.TemplateReference
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		ref = samlib.NewLocalTemplateReference(arg)
	} else {
		ref = samlib.NewRemoteTemplateReference(arg)
	}
	return ref.Fetch(cmd.Context(), "check")
}
