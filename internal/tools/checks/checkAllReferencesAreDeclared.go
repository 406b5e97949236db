// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"fmt"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/tools/checker"
	"github.com/sambuild/samlib/internal/tools/errcheck"
)

// CheckAllReferencesAreDeclared is a validator check that ensures every
// parameter indirection of every document resolves to a parameter or
// resource declared in the same document.
func CheckAllReferencesAreDeclared(sl *samlib.SamLib) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All references are declared",
		func() error {
			return checkAllReferencesAreDeclared(sl)
		},
	)
}

func checkAllReferencesAreDeclared(sl *samlib.SamLib) error {
	errs := errcheck.NewCheckerError()
	for _, docPath := range sl.Templates() {
		tmpl, err := sl.Template(docPath)
		if err != nil {
			return err
		}
		for _, name := range tmpl.ResourceNames() {
			for _, ref := range tmpl.Resources[name].References() {
				if tmpl.DeclaresReferenceTarget(ref) {
					continue
				}
				errs.Add(fmt.Errorf("checkAllReferencesAreDeclared: reference %s in resource %s of %s is not declared in the document", ref, name, docPath))
			}
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}
