// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package samlib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sambuild/samlib/internal/processor"
	"github.com/sambuild/samlib/template"
)

const (
	defaultParallelism = 10 // default number of template documents validated in parallel
	defaultMaxDepth    = 10 // default maximum nesting depth of the stack tree
)

// SamLib is the structure that gets built from the template documents.
// Do not create this directly, use NewSamLib instead.
type SamLib struct {
	Options *Options

	templates map[string]*template.Template // keyed by document path within the source FS
	stacks    map[string]*Stack             // keyed by hierarchical stack name
	mu        sync.RWMutex
}

// Options are options for the SamLib.
// This is created by NewSamLib.
type Options struct {
	AllowOverwrite bool // AllowOverwrite allows overwriting of existing templates when processing additional sources with SamLib.Init()
	Parallelism    int  // Parallelism is the number of template documents validated in parallel
	MaxDepth       int  // MaxDepth is the maximum nesting depth of the stack tree
}

// NewSamLib returns a new instance of the samlib library.
// Pass nil to use the default options.
func NewSamLib(opts *Options) *SamLib {
	if opts == nil {
		opts = getDefaultOptions()
	}
	return &SamLib{
		Options:   opts,
		templates: make(map[string]*template.Template),
		stacks:    make(map[string]*Stack),
	}
}

func getDefaultOptions() *Options {
	return &Options{
		Parallelism: defaultParallelism,
		MaxDepth:    defaultMaxDepth,
	}
}

// Init processes template sources, supplied as fs.FS interfaces.
// These are typically created by `os.DirFS`, or returned by one of the fetch
// functions. It populates the struct with the results of the processing:
// every document found becomes a template entry, and the nested-application
// declarations are linked into a tree of stacks.
func (sl *SamLib) Init(ctx context.Context, sources ...fs.FS) error {
	if sl.Options == nil || sl.Options.Parallelism == 0 {
		return errors.New("samlib Options not set or parallelism is 0")
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	for _, source := range sources {
		res := new(processor.Result)
		pc := processor.NewProcessorClient(source)
		if err := pc.Process(res); err != nil {
			return fmt.Errorf("error processing template source %v: %w", source, err)
		}

		if err := sl.validateReferences(ctx, res); err != nil {
			return err
		}

		if err := sl.addProcessedResult(res); err != nil {
			return err
		}

		if err := sl.generateStacks(res); err != nil {
			return err
		}
	}

	return nil
}

// Stacks returns the sorted names of all stacks, including nested ones.
func (sl *SamLib) Stacks() []string {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	result := make([]string, 0, len(sl.stacks))
	for k := range sl.stacks {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// RootStacks returns the sorted names of the stacks that are not nested
// within another stack.
func (sl *SamLib) RootStacks() []string {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	result := make([]string, 0, len(sl.stacks))
	for k, s := range sl.stacks {
		if s.parent == nil {
			result = append(result, k)
		}
	}
	sort.Strings(result)
	return result
}

// Stack returns the stack with the given name.
func (sl *SamLib) Stack(name string) (*Stack, error) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	if s, ok := sl.stacks[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("stack %s not found", name)
}

// Templates returns the sorted document paths of all loaded templates.
func (sl *SamLib) Templates() []string {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	result := make([]string, 0, len(sl.templates))
	for k := range sl.templates {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// Template returns the template with the given document path.
func (sl *SamLib) Template(docPath string) (*template.Template, error) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	if t, ok := sl.templates[path.Clean(docPath)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("template %s not found", docPath)
}

// TemplateExists returns true if a template with the given document path has been loaded.
func (sl *SamLib) TemplateExists(docPath string) bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	_, exists := sl.templates[path.Clean(docPath)]
	return exists
}

// validateReferences checks every parameter indirection of every document in
// the result against the declarations of the same document. Documents are
// validated in parallel, limited by Options.Parallelism.
func (sl *SamLib) validateReferences(ctx context.Context, res *processor.Result) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(sl.Options.Parallelism)
	for docPath, tmpl := range res.Templates {
		docPath, tmpl := docPath, tmpl
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return validateTemplateReferences(docPath, tmpl)
		})
	}
	return grp.Wait()
}

// validateTemplateReferences checks that every reference within the document
// resolves to a parameter or resource declared in the same document.
func validateTemplateReferences(docPath string, tmpl *template.Template) error {
	for name, res := range tmpl.Resources {
		for _, ref := range res.References() {
			if !tmpl.DeclaresReferenceTarget(ref) {
				return fmt.Errorf("reference %s in resource %s of %s does not resolve to a declared parameter or resource", ref, name, docPath)
			}
		}
	}
	return nil
}

// addProcessedResult adds the results of a processed template source to the SamLib.
func (sl *SamLib) addProcessedResult(res *processor.Result) error {
	for k, v := range res.Templates {
		if _, exists := sl.templates[k]; exists && !sl.Options.AllowOverwrite {
			return fmt.Errorf("template %s already exists in the library", k)
		}
		sl.templates[k] = v
	}
	return nil
}

// generateStacks generates the stack tree from the result of the processor.
// The stacks are stored in the SamLib instance. A template that is not
// referenced as a nested-application location of another document in the same
// source becomes a root stack. Every document must end up reachable from a
// root: documents that only reference each other would otherwise drop out of
// the tree without an error.
func (sl *SamLib) generateStacks(res *processor.Result) error {
	referenced, err := referencedLocations(res)
	if err != nil {
		return err
	}

	roots := make([]string, 0, len(res.Templates))
	for docPath := range res.Templates {
		if !referenced.ContainsOne(docPath) {
			roots = append(roots, docPath)
		}
	}
	sort.Strings(roots)

	reached := mapset.NewThreadUnsafeSet[string]()
	for _, docPath := range roots {
		if _, err := sl.buildStack(res, stackNameForDocument(docPath), docPath, nil, 1, reached); err != nil {
			return err
		}
	}

	unreachable := make([]string, 0)
	for docPath := range res.Templates {
		if !reached.ContainsOne(docPath) {
			unreachable = append(unreachable, docPath)
		}
	}
	if len(unreachable) > 0 {
		sort.Strings(unreachable)
		return fmt.Errorf("nested stack cycle: documents %v reference each other and are unreachable from any root", unreachable)
	}
	return nil
}

// buildStack creates the stack for the supplied document and recurses into
// its nested applications. The returned stack and all of its descendants are
// registered in the SamLib stack map.
func (sl *SamLib) buildStack(res *processor.Result, name, docPath string, parent *Stack, depth int, reached mapset.Set[string]) (*Stack, error) {
	if depth > sl.Options.MaxDepth {
		return nil, fmt.Errorf("stack %s exceeds the maximum nesting depth of %d", name, sl.Options.MaxDepth)
	}
	if _, exists := sl.stacks[name]; exists && !sl.Options.AllowOverwrite {
		return nil, fmt.Errorf("stack %s already exists in the library", name)
	}

	tmpl := res.Templates[docPath]
	stack := newStack(name, docPath, tmpl)
	stack.parent = parent
	reached.Add(docPath)

	// A document that references one of its ancestors would recurse forever.
	for a := parent; a != nil; a = a.parent {
		if a.docPath == docPath {
			return nil, fmt.Errorf("nested stack cycle: %s is an ancestor of itself", docPath)
		}
	}

	for _, logicalID := range tmpl.Applications() {
		app, err := tmpl.Resources[logicalID].Application()
		if err != nil {
			return nil, err
		}
		loc, ok := app.LocalLocation()
		if !ok {
			stack.remoteLocations = append(stack.remoteLocations, app.Location.String())
			continue
		}
		childPath := stack.ResolveLocation(loc)
		if _, exists := res.Templates[childPath]; !exists {
			stack.missingLocations = append(stack.missingLocations, loc)
			continue
		}
		child, err := sl.buildStack(res, name+"/"+logicalID, childPath, stack, depth+1, reached)
		if err != nil {
			return nil, err
		}
		stack.children.Add(child)
	}

	sl.stacks[name] = stack
	return stack, nil
}

// referencedLocations returns the set of document paths referenced as a
// nested-application location by any document of the result.
func referencedLocations(res *processor.Result) (mapset.Set[string], error) {
	referenced := mapset.NewThreadUnsafeSet[string]()
	for docPath, tmpl := range res.Templates {
		dir := path.Dir(docPath)
		for _, logicalID := range tmpl.Applications() {
			app, err := tmpl.Resources[logicalID].Application()
			if err != nil {
				return nil, err
			}
			if loc, ok := app.LocalLocation(); ok {
				referenced.Add(path.Join(dir, loc))
			}
		}
	}
	return referenced, nil
}

// stackNameForDocument derives a root stack name from a document path.
// The canonical `template.yaml` at the root of a source maps to "root".
func stackNameForDocument(docPath string) string {
	dir := path.Dir(docPath)
	if dir == "." {
		return "root"
	}
	return dir
}
