// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import (
	"sort"
)

// Template represents a single serverless template document.
// Documents are authored once and read by the build tooling; they are never
// mutated in place.
type Template struct {
	AWSTemplateFormatVersion string                `yaml:"AWSTemplateFormatVersion" json:"AWSTemplateFormatVersion"`
	Transform                string                `yaml:"Transform"                json:"Transform"`
	Description              string                `yaml:"Description"              json:"Description"`
	Globals                  *Globals              `yaml:"Globals"                  json:"Globals"`
	Parameters               map[string]*Parameter `yaml:"Parameters"               json:"Parameters"`
	Resources                map[string]*Resource  `yaml:"Resources"                json:"Resources"`
	Metadata                 map[string]any        `yaml:"Metadata"                 json:"Metadata"`
}

// Parameter represents a named external input declared by the document.
// A caller (the build tool or a parent template) must supply a value for
// every parameter without a default.
type Parameter struct {
	Type        string  `yaml:"Type"        json:"Type"`
	Description string  `yaml:"Description" json:"Description"`
	Default     *string `yaml:"Default"     json:"Default"`
}

// Globals represents the shared defaults that apply to all function
// resources in the document.
type Globals struct {
	Function *FunctionGlobals `yaml:"Function" json:"Function"`
}

// FunctionGlobals holds the function-level defaults of the Globals section.
type FunctionGlobals struct {
	Timeout    *int   `yaml:"Timeout"    json:"Timeout"`
	MemorySize *int   `yaml:"MemorySize" json:"MemorySize"`
	Runtime    string `yaml:"Runtime"    json:"Runtime"`
	Tracing    string `yaml:"Tracing"    json:"Tracing"`
	Handler    string `yaml:"Handler"    json:"Handler"`
}

// ApplyTo merges the globals into the supplied function properties.
// Properties already set on the function take precedence.
func (g *FunctionGlobals) ApplyTo(fp *FunctionProperties) {
	if g == nil || fp == nil {
		return
	}
	if fp.Timeout == nil {
		fp.Timeout = g.Timeout
	}
	if fp.MemorySize == nil {
		fp.MemorySize = g.MemorySize
	}
	if fp.Runtime == "" {
		fp.Runtime = g.Runtime
	}
	if fp.Tracing == "" {
		fp.Tracing = g.Tracing
	}
	if fp.Handler == "" {
		fp.Handler = g.Handler
	}
}

// ParameterNames returns the sorted names of the parameters declared by the document.
func (t *Template) ParameterNames() []string {
	names := make([]string, 0, len(t.Parameters))
	for name := range t.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResourceNames returns the sorted logical ids of the resources declared by the document.
func (t *Template) ResourceNames() []string {
	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeclaresReferenceTarget returns true if the supplied name is a parameter or
// a resource declared in the document. Every intra-document reference must
// resolve to such a declaration.
func (t *Template) DeclaresReferenceTarget(name string) bool {
	if _, ok := t.Parameters[name]; ok {
		return true
	}
	_, ok := t.Resources[name]
	return ok
}

// ResourcesOfType returns the sorted logical ids of the resources with the
// supplied type tag.
func (t *Template) ResourcesOfType(typ string) []string {
	names := make([]string, 0, len(t.Resources))
	for name, res := range t.Resources {
		if res.Type == typ {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Functions returns the sorted logical ids of the function resources.
func (t *Template) Functions() []string {
	return t.ResourcesOfType(ResourceTypeFunction)
}

// Layers returns the sorted logical ids of the layer-version resources.
func (t *Template) Layers() []string {
	return t.ResourcesOfType(ResourceTypeLayerVersion)
}

// Applications returns the sorted logical ids of the nested-application resources.
func (t *Template) Applications() []string {
	return t.ResourcesOfType(ResourceTypeApplication)
}
