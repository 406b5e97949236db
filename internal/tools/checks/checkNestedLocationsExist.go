// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"fmt"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/tools/checker"
	"github.com/sambuild/samlib/internal/tools/errcheck"
)

// CheckNestedLocationsExist is a validator check that ensures every
// nested-application location resolves, relative to the directory of the
// containing document, to a template document that exists.
func CheckNestedLocationsExist(sl *samlib.SamLib) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All nested application locations exist",
		func() error {
			return checkNestedLocationsExist(sl)
		},
	)
}

func checkNestedLocationsExist(sl *samlib.SamLib) error {
	errs := errcheck.NewCheckerError()
	for _, name := range sl.Stacks() {
		stack, err := sl.Stack(name)
		if err != nil {
			return err
		}
		for _, loc := range stack.MissingLocations() {
			errs.Add(fmt.Errorf("checkNestedLocationsExist: location %s of stack %s resolves to %s, which is not a loaded template document", loc, name, stack.ResolveLocation(loc)))
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}
