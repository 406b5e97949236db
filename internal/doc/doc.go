// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

// Package doc renders documentation for a loaded template library.
package doc

import (
	"fmt"
	"io"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/template"
)

// StackTreeMd writes a markdown document describing the stack tree of the
// supplied library: one section per stack, resources grouped by type, and
// the parameters each nested stack receives.
func StackTreeMd(w io.Writer, sl *samlib.SamLib) error {
	if _, err := io.WriteString(w, "# Stacks\n"); err != nil {
		return err
	}
	for _, name := range sl.RootStacks() {
		stack, err := sl.Stack(name)
		if err != nil {
			return err
		}
		if err := writeStack(w, stack); err != nil {
			return err
		}
	}
	return nil
}

func writeStack(w io.Writer, stack *samlib.Stack) error {
	tmpl := stack.Template()
	if _, err := fmt.Fprintf(w, "\n## `%s`\n\nDocument: `%s`\n", stack.Name(), stack.DocumentPath()); err != nil {
		return err
	}

	if params := tmpl.ParameterNames(); len(params) > 0 {
		if _, err := io.WriteString(w, "\nParameters:\n\n"); err != nil {
			return err
		}
		for _, name := range params {
			p := tmpl.Parameters[name]
			if _, err := fmt.Fprintf(w, "- `%s` (%s): %s\n", name, p.Type, p.Description); err != nil {
				return err
			}
		}
	}

	if _, err := io.WriteString(w, "\nResources:\n\n"); err != nil {
		return err
	}
	for _, name := range tmpl.ResourceNames() {
		res := tmpl.Resources[name]
		if _, err := fmt.Fprintf(w, "- `%s` (%s)%s\n", name, res.Type, resourceDetail(stack, res)); err != nil {
			return err
		}
	}

	for _, child := range stack.Children() {
		if err := writeStack(w, child); err != nil {
			return err
		}
	}
	return nil
}

func resourceDetail(stack *samlib.Stack, res *template.Resource) string {
	switch res.Type {
	case template.ResourceTypeFunction:
		fp, err := res.Function()
		if err != nil {
			return ""
		}
		return fmt.Sprintf(": runtime %s, code %s", fp.Runtime, fp.CodeURI)
	case template.ResourceTypeLayerVersion:
		lp, err := res.LayerVersion()
		if err != nil {
			return ""
		}
		return fmt.Sprintf(": name %s, content %s", lp.LayerName, lp.ContentURI)
	case template.ResourceTypeApplication:
		ap, err := res.Application()
		if err != nil {
			return ""
		}
		return fmt.Sprintf(": location %s (resolved %s)", ap.Location, stack.ResolveLocation(ap.Location.String()))
	}
	return ""
}
