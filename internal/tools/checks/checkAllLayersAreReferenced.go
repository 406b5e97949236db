// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package checks

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/internal/tools/checker"
)

// CheckAllLayersAreReferenced is a validator check that reports layer-version
// resources that no other resource of the same document refers to.
func CheckAllLayersAreReferenced(sl *samlib.SamLib) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All layers are referenced",
		func() error {
			return checkAllLayersAreReferenced(sl)
		},
	)
}

func checkAllLayersAreReferenced(sl *samlib.SamLib) error {
	unreferenced := make([]string, 0)
	for _, docPath := range sl.Templates() {
		tmpl, err := sl.Template(docPath)
		if err != nil {
			return err
		}
		referenced := mapset.NewThreadUnsafeSet[string]()
		for _, name := range tmpl.ResourceNames() {
			referenced.Append(tmpl.Resources[name].References()...)
		}
		layers := mapset.NewThreadUnsafeSet(tmpl.Layers()...)
		for _, name := range mapset.Sorted(layers.Difference(referenced)) {
			unreferenced = append(unreferenced, docPath+": "+name)
		}
	}
	if len(unreferenced) > 0 {
		return fmt.Errorf("checkAllLayersAreReferenced: found unreferenced layer-version resources: %v", unreferenced)
	}
	return nil
}
