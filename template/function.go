// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

// FunctionProperties represents the properties of a function resource.
// CodeURI is a location whose relative form resolves against the externally
// supplied base directory, not the directory of the containing document.
type FunctionProperties struct {
	CodeURI    string  `yaml:"CodeUri"     json:"CodeUri"`
	Handler    string  `yaml:"Handler"     json:"Handler"`
	Runtime    string  `yaml:"Runtime"     json:"Runtime"`
	Layers     []Value `yaml:"Layers"      json:"Layers"`
	Tracing    string  `yaml:"Tracing"     json:"Tracing"`
	Timeout    *int    `yaml:"Timeout"     json:"Timeout"`
	MemorySize *int    `yaml:"MemorySize"  json:"MemorySize"`
}

func (fp *FunctionProperties) validate() error {
	if fp.CodeURI == "" {
		return NewErrPropertyMustNotBeEmpty(ResourceTypeFunction, "CodeUri")
	}
	if fp.Handler == "" {
		return NewErrPropertyMustNotBeEmpty(ResourceTypeFunction, "Handler")
	}
	return nil
}
