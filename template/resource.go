// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// The resource type tags recognized by the loader. Resources with any other
// type tag are retained with their raw properties.
const (
	ResourceTypeFunction     = "AWS::Serverless::Function"
	ResourceTypeLayerVersion = "AWS::Serverless::LayerVersion"
	ResourceTypeApplication  = "AWS::Serverless::Application"
)

// metadataBuildMethodKey is the resource metadata key naming the build method
// used by the build tooling.
const metadataBuildMethodKey = "BuildMethod"

// Resource represents a named, typed declaration within the template.
// The shape of the properties depends on the type tag, so the properties are
// decoded into a type-specific struct and exposed through typed accessors.
type Resource struct {
	Type     string
	Metadata map[string]any

	properties any
	raw        map[string]any
}

var _ yaml.Unmarshaler = (*Resource)(nil)
var _ json.Unmarshaler = (*Resource)(nil)

// Function returns the typed properties of a function resource.
func (r *Resource) Function() (*FunctionProperties, error) {
	fp, ok := r.properties.(*FunctionProperties)
	if !ok {
		return nil, NewErrUnsupportedResourceType(ResourceTypeFunction, r.Type)
	}
	return fp, nil
}

// LayerVersion returns the typed properties of a layer-version resource.
func (r *Resource) LayerVersion() (*LayerVersionProperties, error) {
	lp, ok := r.properties.(*LayerVersionProperties)
	if !ok {
		return nil, NewErrUnsupportedResourceType(ResourceTypeLayerVersion, r.Type)
	}
	return lp, nil
}

// Application returns the typed properties of a nested-application resource.
func (r *Resource) Application() (*ApplicationProperties, error) {
	ap, ok := r.properties.(*ApplicationProperties)
	if !ok {
		return nil, NewErrUnsupportedResourceType(ResourceTypeApplication, r.Type)
	}
	return ap, nil
}

// RawProperties returns the untyped properties of a resource whose type tag
// is not recognized by the loader.
func (r *Resource) RawProperties() map[string]any {
	return r.raw
}

// BuildMethod returns the build method tag from the resource metadata block,
// or the empty string if none is present.
func (r *Resource) BuildMethod() string {
	bm, ok := r.Metadata[metadataBuildMethodKey].(string)
	if !ok {
		return ""
	}
	return bm
}

// References returns the sorted names of the parameters and resources of the
// same document referenced by the resource properties.
func (r *Resource) References() []string {
	var values []Value
	switch p := r.properties.(type) {
	case *FunctionProperties:
		values = p.Layers
	case *LayerVersionProperties:
		values = []Value{p.LayerName}
	case *ApplicationProperties:
		values = make([]Value, 0, len(p.Parameters)+1)
		values = append(values, p.Location)
		for _, v := range p.Parameters {
			values = append(values, v)
		}
	}
	refs := make([]string, 0, len(values))
	for _, v := range values {
		refs = append(refs, v.References()...)
	}
	sort.Strings(refs)
	return refs
}

// UnmarshalYAML decodes the resource, dispatching the properties on the type tag.
func (r *Resource) UnmarshalYAML(node *yaml.Node) error {
	tmp := struct {
		Type       string         `yaml:"Type"`
		Properties yaml.Node      `yaml:"Properties"`
		Metadata   map[string]any `yaml:"Metadata"`
	}{}
	if err := node.Decode(&tmp); err != nil {
		return fmt.Errorf("Resource.UnmarshalYAML: error decoding resource: %w", err)
	}
	r.Type = tmp.Type
	r.Metadata = tmp.Metadata
	return r.decodeProperties(func(dst any) error {
		if tmp.Properties.IsZero() {
			return nil
		}
		return tmp.Properties.Decode(dst)
	})
}

// UnmarshalJSON decodes the resource, dispatching the properties on the type tag.
func (r *Resource) UnmarshalJSON(data []byte) error {
	tmp := struct {
		Type       string          `json:"Type"`
		Properties json.RawMessage `json:"Properties"`
		Metadata   map[string]any  `json:"Metadata"`
	}{}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("Resource.UnmarshalJSON: json.Unmarshal error: %w", err)
	}
	r.Type = tmp.Type
	r.Metadata = tmp.Metadata
	return r.decodeProperties(func(dst any) error {
		if len(tmp.Properties) == 0 {
			return nil
		}
		return json.Unmarshal(tmp.Properties, dst)
	})
}

// decodeProperties decodes the properties into the struct matching the type
// tag and validates the required property keys.
func (r *Resource) decodeProperties(decode func(dst any) error) error {
	if r.Type == "" {
		return NewErrPropertyMustNotBeEmpty("resource", "Type")
	}
	switch r.Type {
	case ResourceTypeFunction:
		fp := new(FunctionProperties)
		if err := decode(fp); err != nil {
			return fmt.Errorf("Resource.decodeProperties: error decoding %s properties: %w", r.Type, err)
		}
		if err := fp.validate(); err != nil {
			return err
		}
		r.properties = fp
	case ResourceTypeLayerVersion:
		lp := new(LayerVersionProperties)
		if err := decode(lp); err != nil {
			return fmt.Errorf("Resource.decodeProperties: error decoding %s properties: %w", r.Type, err)
		}
		if err := lp.validate(); err != nil {
			return err
		}
		r.properties = lp
	case ResourceTypeApplication:
		ap := new(ApplicationProperties)
		if err := decode(ap); err != nil {
			return fmt.Errorf("Resource.decodeProperties: error decoding %s properties: %w", r.Type, err)
		}
		if err := ap.validate(); err != nil {
			return err
		}
		r.properties = ap
	default:
		raw := make(map[string]any)
		if err := decode(&raw); err != nil {
			return fmt.Errorf("Resource.decodeProperties: error decoding %s properties: %w", r.Type, err)
		}
		r.raw = raw
	}
	return nil
}
