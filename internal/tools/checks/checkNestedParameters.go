// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/tools/checker"
	"github.com/sambuild/samlib/internal/tools/errcheck"
	"github.com/sambuild/samlib/template"
)

// CheckNestedParameters is a validator check that ensures the parameter
// mapping passed into every nested application matches the parameters
// declared by the child document: no undeclared keys, and no missing keys
// unless the child declares a default.
func CheckNestedParameters(sl *samlib.SamLib) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All nested application parameters match the child document",
		func() error {
			return checkNestedParameters(sl)
		},
	)
}

func checkNestedParameters(sl *samlib.SamLib) error {
	errs := errcheck.NewCheckerError()
	for _, name := range sl.Stacks() {
		stack, err := sl.Stack(name)
		if err != nil {
			return err
		}
		tmpl := stack.Template()
		for _, logicalID := range tmpl.Applications() {
			app, err := tmpl.Resources[logicalID].Application()
			if err != nil {
				return err
			}
			loc, ok := app.LocalLocation()
			if !ok {
				continue
			}
			child, err := sl.Template(stack.ResolveLocation(loc))
			if err != nil {
				// Missing child documents are reported by CheckNestedLocationsExist.
				continue
			}
			checkNestedParameterMapping(errs, name, logicalID, app, child)
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func checkNestedParameterMapping(errs *errcheck.CheckerError, stackName, logicalID string, app *template.ApplicationProperties, child *template.Template) {
	supplied := mapset.NewThreadUnsafeSet[string]()
	for k := range app.Parameters {
		supplied.Add(k)
	}

	declared := mapset.NewThreadUnsafeSet[string]()
	required := mapset.NewThreadUnsafeSet[string]()
	for k, p := range child.Parameters {
		declared.Add(k)
		if p.Default == nil {
			required.Add(k)
		}
	}

	for _, k := range mapset.Sorted(required.Difference(supplied)) {
		errs.Add(fmt.Errorf("checkNestedParameters: nested application %s of stack %s does not supply required parameter %s", logicalID, stackName, k))
	}
	for _, k := range mapset.Sorted(supplied.Difference(declared)) {
		errs.Add(fmt.Errorf("checkNestedParameters: nested application %s of stack %s supplies parameter %s, which the child document does not declare", logicalID, stackName, k))
	}
}
