// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package deployment

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/brunoga/deep"
	"github.com/google/uuid"

	"github.com/sambuild/samlib"
	"github.com/sambuild/samlib/template"
)

// maxResourceNameLength is the longest name accepted for a generated
// resource name override.
const maxResourceNameLength = 140

// subVariableRegex matches ${Name} variables inside an Fn::Sub template
// string. The ${!Literal} escape form is excluded.
var subVariableRegex = regexp.MustCompile(`\$\{[^!}][^}]*\}`)

// Plan represents a flattened deployment of a stack tree.
// Every resource of the root stack and of its nested stacks appears once,
// under a hierarchical logical id.
type Plan struct {
	resources map[string]*Resource
	lib       *samlib.SamLib
	mu        *sync.RWMutex
}

// Resource is one deployable resource of the plan.
type Resource struct {
	LogicalID  string            // hierarchical id, e.g. `root/ChildChildStack/HelloWorldFunction`
	StackName  string            // the stack the resource was declared in
	Type       string            // the resource type tag
	ID         uuid.UUID         // stable id derived from the logical id
	Properties any               // deep copy of the typed properties, with globals applied
	References map[string]string // resolved parameter indirections of the resource
}

// NewPlan returns an empty plan for the supplied library.
func NewPlan(lib *samlib.SamLib) *Plan {
	return &Plan{
		resources: make(map[string]*Resource),
		lib:       lib,
		mu:        new(sync.RWMutex),
	}
}

// ListResources returns the logical ids of the plan's resources as a sorted
// slice of string.
func (p *Plan) ListResources() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	res := make([]string, 0, len(p.resources))
	for id := range p.resources {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}

// GetResource returns the resource with the given logical id, or nil.
func (p *Plan) GetResource(logicalID string) *Resource {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if r, ok := p.resources[logicalID]; ok {
		return r
	}
	return nil
}

// FromStack flattens the supplied stack and all of its nested stacks into
// the plan. The overrides supply values for the stack's parameters; every
// parameter without an override must declare a default.
func (p *Plan) FromStack(ctx context.Context, stackName string, overrides map[string]string) error {
	stack, err := p.lib.Stack(stackName)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addStack(ctx, stack, overrides)
}

func (p *Plan) addStack(ctx context.Context, stack *samlib.Stack, overrides map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpl := stack.Template()
	params, err := parameterValues(stack, tmpl, overrides)
	if err != nil {
		return err
	}

	for _, name := range tmpl.ResourceNames() {
		res := tmpl.Resources[name]
		if err := p.addResource(stack, tmpl, name, res, params); err != nil {
			return err
		}
	}

	// Recurse into the nested stacks with the parameter values their parent
	// passes down.
	for _, child := range stack.Children() {
		logicalID := child.Name()[strings.LastIndex(child.Name(), "/")+1:]
		app, err := tmpl.Resources[logicalID].Application()
		if err != nil {
			return err
		}
		childOverrides := make(map[string]string, len(app.Parameters))
		for k, v := range app.Parameters {
			resolved, err := resolveValue(stack, tmpl, v, params)
			if err != nil {
				return fmt.Errorf("error resolving parameter %s of nested stack %s: %w", k, child.Name(), err)
			}
			childOverrides[k] = resolved
		}
		if err := p.addStack(ctx, child, childOverrides); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plan) addResource(stack *samlib.Stack, tmpl *template.Template, name string, res *template.Resource, params map[string]string) error {
	logicalID := stack.Name() + "/" + name
	if _, exists := p.resources[logicalID]; exists {
		return fmt.Errorf("resource %s already exists in the plan", logicalID)
	}

	refs := make(map[string]string, len(res.References()))
	for _, ref := range res.References() {
		resolved, err := resolveReference(stack, tmpl, ref, params)
		if err != nil {
			return err
		}
		refs[ref] = resolved
	}

	properties, err := copyProperties(tmpl, res)
	if err != nil {
		return err
	}

	p.resources[logicalID] = &Resource{
		LogicalID:  logicalID,
		StackName:  stack.Name(),
		Type:       res.Type,
		ID:         uuidV5(logicalID),
		Properties: properties,
		References: refs,
	}
	return nil
}

// copyProperties deep copies the typed properties of the resource so the
// plan never aliases the library's template data. Function properties get
// the document's globals applied.
func copyProperties(tmpl *template.Template, res *template.Resource) (any, error) {
	switch res.Type {
	case template.ResourceTypeFunction:
		fp, err := res.Function()
		if err != nil {
			return nil, err
		}
		cp, err := deep.Copy(fp)
		if err != nil {
			return nil, fmt.Errorf("error copying function properties: %w", err)
		}
		if tmpl.Globals != nil {
			tmpl.Globals.Function.ApplyTo(cp)
		}
		return cp, nil
	case template.ResourceTypeLayerVersion:
		lp, err := res.LayerVersion()
		if err != nil {
			return nil, err
		}
		cp, err := deep.Copy(lp)
		if err != nil {
			return nil, fmt.Errorf("error copying layer-version properties: %w", err)
		}
		return cp, nil
	case template.ResourceTypeApplication:
		ap, err := res.Application()
		if err != nil {
			return nil, err
		}
		cp, err := deep.Copy(ap)
		if err != nil {
			return nil, fmt.Errorf("error copying application properties: %w", err)
		}
		return cp, nil
	}
	cp, err := deep.Copy(res.RawProperties())
	if err != nil {
		return nil, fmt.Errorf("error copying raw properties: %w", err)
	}
	return cp, nil
}

// parameterValues builds the effective parameter values of a stack from the
// supplied overrides and the document's declared defaults.
func parameterValues(stack *samlib.Stack, tmpl *template.Template, overrides map[string]string) (map[string]string, error) {
	params := make(map[string]string, len(tmpl.Parameters))
	for _, name := range tmpl.ParameterNames() {
		if v, ok := overrides[name]; ok {
			params[name] = v
			continue
		}
		if def := tmpl.Parameters[name].Default; def != nil {
			params[name] = *def
			continue
		}
		return nil, fmt.Errorf("parameter %s of stack %s has no value and no default", name, stack.Name())
	}
	for name := range overrides {
		if _, ok := tmpl.Parameters[name]; !ok {
			return nil, fmt.Errorf("override for parameter %s, which stack %s does not declare", name, stack.Name())
		}
	}
	return params, nil
}

// resolveValue resolves a property value to a string: literals resolve to
// themselves, references resolve via resolveReference.
func resolveValue(stack *samlib.Stack, tmpl *template.Template, v template.Value, params map[string]string) (string, error) {
	if s, ok := v.Static(); ok {
		return s, nil
	}
	if ref, ok := v.Ref(); ok {
		return resolveReference(stack, tmpl, ref, params)
	}
	if segments, ok := v.GetAtt(); ok {
		resolved, err := resolveReference(stack, tmpl, segments[0], params)
		if err != nil {
			return "", err
		}
		return strings.Join(append([]string{resolved}, segments[1:]...), "."), nil
	}
	if sub, ok := v.Sub(); ok {
		return resolveSub(stack, tmpl, sub, params)
	}
	return "", fmt.Errorf("cannot resolve value %s", v)
}

// resolveReference resolves a single reference name: parameters resolve to
// their effective value, resources resolve to their hierarchical logical id.
func resolveReference(stack *samlib.Stack, tmpl *template.Template, ref string, params map[string]string) (string, error) {
	if v, ok := params[ref]; ok {
		return v, nil
	}
	if _, ok := tmpl.Resources[ref]; ok {
		return stack.Name() + "/" + ref, nil
	}
	return "", fmt.Errorf("reference %s is not declared in stack %s", ref, stack.Name())
}

func resolveSub(stack *samlib.Stack, tmpl *template.Template, sub string, params map[string]string) (string, error) {
	var resolveErr error
	out := subVariableRegex.ReplaceAllStringFunc(sub, func(m string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(m, "${"), "}")
		if strings.HasPrefix(name, "AWS::") {
			// Pseudo parameters are supplied by the platform at deploy time.
			return m
		}
		name, _, _ = strings.Cut(name, ".")
		resolved, err := resolveReference(stack, tmpl, name, params)
		if err != nil {
			resolveErr = err
			return m
		}
		return resolved
	})
	return out, resolveErr
}

// UniqueResourceName returns a name override made unique with a uuid suffix.
// The result is capped at 140 characters, the longest name accepted for
// layer names.
func UniqueResourceName(prefix string) string {
	name := prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(name) > maxResourceNameLength {
		name = name[:maxResourceNameLength]
	}
	return name
}

// uuidV5 returns a stable uuid derived from the supplied strings.
func uuidV5(s ...string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(s, "")))
}
