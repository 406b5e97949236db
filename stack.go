// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package samlib

import (
	"path"
	"path/filepath"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/sambuild/samlib/template"
)

// Stack represents one template document within the stack tree built by
// SamLib.Init. It records the directory of its document so that nested
// application locations can be resolved against it.
type Stack struct {
	name     string
	docPath  string
	dir      string
	template *template.Template
	parent   *Stack
	children mapset.Set[*Stack]

	missingLocations []string
	remoteLocations  []string
}

func newStack(name, docPath string, tmpl *template.Template) *Stack {
	return &Stack{
		name:     name,
		docPath:  docPath,
		dir:      path.Dir(docPath),
		template: tmpl,
		children: mapset.NewThreadUnsafeSet[*Stack](),
	}
}

// Name returns the hierarchical name of the stack. Nested stacks are named
// `<parent>/<logical id>`.
func (s *Stack) Name() string {
	return s.name
}

// DocumentPath returns the path of the stack's template document within its
// source FS.
func (s *Stack) DocumentPath() string {
	return s.docPath
}

// Dir returns the directory of the stack's template document within its
// source FS.
func (s *Stack) Dir() string {
	return s.dir
}

// Template returns the template document of the stack.
func (s *Stack) Template() *template.Template {
	return s.template
}

// Parent returns the parent stack, or nil for a root stack.
func (s *Stack) Parent() *Stack {
	return s.parent
}

// Children returns the nested stacks sorted by name.
func (s *Stack) Children() []*Stack {
	children := s.children.ToSlice()
	sort.Slice(children, func(i, j int) bool {
		return children[i].name < children[j].name
	})
	return children
}

// MissingLocations returns the nested-application locations of the document
// that did not resolve to a loaded template.
func (s *Stack) MissingLocations() []string {
	return s.missingLocations
}

// RemoteLocations returns the nested-application locations of the document
// that point at remote templates.
func (s *Stack) RemoteLocations() []string {
	return s.remoteLocations
}

// ResolveLocation resolves a nested-application location against the
// directory containing this stack's document. This resolution base is
// intentionally different from the one used for code and content locations,
// see ResolveCodeURI.
func (s *Stack) ResolveLocation(location string) string {
	return path.Join(s.dir, location)
}

// ResolveCodeURI resolves a function code location or layer content location
// against the externally supplied base directory. The document's own
// directory plays no part in this, unlike nested-application locations. The
// two resolution bases must not be unified: build tooling relies on the
// difference.
func (s *Stack) ResolveCodeURI(baseDir, uri string) string {
	return filepath.Join(baseDir, filepath.FromSlash(uri))
}
