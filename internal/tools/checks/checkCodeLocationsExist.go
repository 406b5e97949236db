// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"fmt"
	"os"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/tools/checker"
	"github.com/sambuild/samlib/internal/tools/errcheck"
	"github.com/sambuild/samlib/template"
)

// CheckCodeLocationsExist is a validator check that ensures the code and
// content locations of every function and layer resolve, against the
// supplied base directory, to a path that exists. The base directory is
// external configuration: it is not derived from the documents' own
// directories.
func CheckCodeLocationsExist(sl *samlib.SamLib, baseDir string) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All code and content locations exist",
		func() error {
			return checkCodeLocationsExist(sl, baseDir)
		},
	)
}

func checkCodeLocationsExist(sl *samlib.SamLib, baseDir string) error {
	errs := errcheck.NewCheckerError()
	for _, name := range sl.Stacks() {
		stack, err := sl.Stack(name)
		if err != nil {
			return err
		}
		tmpl := stack.Template()
		for _, logicalID := range tmpl.Functions() {
			fp, err := tmpl.Resources[logicalID].Function()
			if err != nil {
				return err
			}
			checkLocation(errs, stack, logicalID, "CodeUri", fp.CodeURI, baseDir)
		}
		for _, logicalID := range tmpl.Layers() {
			lp, err := tmpl.Resources[logicalID].LayerVersion()
			if err != nil {
				return err
			}
			checkLocation(errs, stack, logicalID, "ContentUri", lp.ContentURI, baseDir)
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func checkLocation(errs *errcheck.CheckerError, stack *samlib.Stack, logicalID, property, uri, baseDir string) {
	if template.IsRemoteLocation(uri) {
		return
	}
	resolved := stack.ResolveCodeURI(baseDir, uri)
	if _, err := os.Stat(resolved); err != nil {
		errs.Add(fmt.Errorf("checkCodeLocationsExist: %s %s of resource %s in stack %s does not exist (resolved %s)", property, uri, logicalID, stack.Name(), resolved))
	}
}
