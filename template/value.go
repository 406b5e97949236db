// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Intrinsic function names recognized in property values.
const (
	FnRef    = "Ref"
	FnSub    = "Fn::Sub"
	FnGetAtt = "Fn::GetAtt"
)

// pseudoParameterPrefix identifies references that are supplied by the
// deployment platform rather than declared in the document.
const pseudoParameterPrefix = "AWS::"

// subVariableRegex matches ${Name} variables inside an Fn::Sub template string.
// The ${!Literal} escape form is excluded.
var subVariableRegex = regexp.MustCompile(`\$\{([^!}][^}]*)\}`)

// Value is a template property value: either a literal scalar or an intrinsic
// reference to another parameter or resource declared in the same document.
// The YAML short-hand tags (!Ref, !Sub, !GetAtt) and the JSON long forms
// ({"Ref": ...}, {"Fn::Sub": ...}, {"Fn::GetAtt": [...]}) unmarshal to the
// same representation.
type Value struct {
	literal string
	fn      string
	args    []string
}

var _ yaml.Unmarshaler = (*Value)(nil)
var _ json.Unmarshaler = (*Value)(nil)

// NewStringValue returns a Value holding a literal scalar.
func NewStringValue(s string) Value {
	return Value{literal: s}
}

// NewRefValue returns a Value holding a Ref to the supplied target.
func NewRefValue(target string) Value {
	return Value{fn: FnRef, args: []string{target}}
}

// NewSubValue returns a Value holding an Fn::Sub template string.
func NewSubValue(tpl string) Value {
	return Value{fn: FnSub, args: []string{tpl}}
}

// NewGetAttValue returns a Value holding an Fn::GetAtt reference.
func NewGetAttValue(segments ...string) Value {
	return Value{fn: FnGetAtt, args: segments}
}

// IsZero returns true if the value holds neither a literal nor an intrinsic.
func (v Value) IsZero() bool {
	return v.fn == "" && v.literal == ""
}

// IsIntrinsic returns true if the value is an intrinsic reference.
func (v Value) IsIntrinsic() bool {
	return v.fn != ""
}

// Static returns the literal scalar and true if the value is not an intrinsic.
func (v Value) Static() (string, bool) {
	if v.fn != "" {
		return "", false
	}
	return v.literal, true
}

// Ref returns the Ref target and true if the value is a Ref intrinsic.
func (v Value) Ref() (string, bool) {
	if v.fn != FnRef || len(v.args) != 1 {
		return "", false
	}
	return v.args[0], true
}

// Sub returns the Fn::Sub template string and true if the value is a Sub intrinsic.
func (v Value) Sub() (string, bool) {
	if v.fn != FnSub || len(v.args) != 1 {
		return "", false
	}
	return v.args[0], true
}

// GetAtt returns the Fn::GetAtt segments (logical id first) and true if the
// value is a GetAtt intrinsic.
func (v Value) GetAtt() ([]string, bool) {
	if v.fn != FnGetAtt || len(v.args) == 0 {
		return nil, false
	}
	return v.args, true
}

// References returns the names of the parameters and resources of the same
// document that the value refers to. Pseudo parameters are excluded.
func (v Value) References() []string {
	refs := make([]string, 0, 1)
	switch v.fn {
	case FnRef:
		refs = appendReference(refs, v.args[0])
	case FnGetAtt:
		refs = appendReference(refs, v.args[0])
	case FnSub:
		for _, m := range subVariableRegex.FindAllStringSubmatch(v.args[0], -1) {
			// GetAtt style variables (${Resource.Attr}) refer to the resource.
			name, _, _ := strings.Cut(m[1], ".")
			refs = appendReference(refs, name)
		}
	}
	return refs
}

func appendReference(refs []string, name string) []string {
	if strings.HasPrefix(name, pseudoParameterPrefix) {
		return refs
	}
	return append(refs, name)
}

// String returns a human readable rendition of the value.
func (v Value) String() string {
	switch v.fn {
	case "":
		return v.literal
	case FnGetAtt:
		return fmt.Sprintf("!GetAtt %s", strings.Join(v.args, "."))
	case FnRef:
		return fmt.Sprintf("!Ref %s", v.args[0])
	case FnSub:
		return fmt.Sprintf("!Sub %s", v.args[0])
	}
	return fmt.Sprintf("!%s %s", v.fn, strings.Join(v.args, " "))
}

// UnmarshalYAML decodes either a plain scalar, a short-hand tagged scalar
// (!Ref, !Sub, !GetAtt), or a single-key mapping using the long form names.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!Ref":
			*v = NewRefValue(node.Value)
		case "!Sub":
			*v = NewSubValue(node.Value)
		case "!GetAtt":
			*v = NewGetAttValue(strings.Split(node.Value, ".")...)
		default:
			*v = NewStringValue(node.Value)
		}
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return NewErrUnknownIntrinsic(node.Tag)
		}
		key := node.Content[0].Value
		val := node.Content[1]
		switch key {
		case FnRef:
			*v = NewRefValue(val.Value)
		case FnSub:
			if val.Kind != yaml.ScalarNode {
				return fmt.Errorf("Value.UnmarshalYAML: only the string form of %s is supported", FnSub)
			}
			*v = NewSubValue(val.Value)
		case FnGetAtt:
			segments, err := getAttSegments(val)
			if err != nil {
				return err
			}
			*v = NewGetAttValue(segments...)
		default:
			return NewErrUnknownIntrinsic(key)
		}
		return nil
	}
	return fmt.Errorf("Value.UnmarshalYAML: unsupported node kind %d", node.Kind)
}

func getAttSegments(node *yaml.Node) ([]string, error) {
	if node.Kind == yaml.ScalarNode {
		return strings.Split(node.Value, "."), nil
	}
	segments := make([]string, 0, len(node.Content))
	if err := node.Decode(&segments); err != nil {
		return nil, fmt.Errorf("Value.UnmarshalYAML: error decoding %s segments: %w", FnGetAtt, err)
	}
	return segments, nil
}

// UnmarshalJSON decodes either a plain string or a single-key object using
// the long form intrinsic names.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = NewStringValue(s)
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("Value.UnmarshalJSON: json.Unmarshal error: %w", err)
	}
	if len(obj) != 1 {
		return NewErrUnknownIntrinsic(fmt.Sprintf("object with %d keys", len(obj)))
	}
	for key, raw := range obj {
		switch key {
		case FnRef, FnSub:
			var arg string
			if err := json.Unmarshal(raw, &arg); err != nil {
				return fmt.Errorf("Value.UnmarshalJSON: error decoding %s argument: %w", key, err)
			}
			if key == FnRef {
				*v = NewRefValue(arg)
			} else {
				*v = NewSubValue(arg)
			}
		case FnGetAtt:
			var segments []string
			if err := json.Unmarshal(raw, &segments); err != nil {
				return fmt.Errorf("Value.UnmarshalJSON: error decoding %s segments: %w", FnGetAtt, err)
			}
			*v = NewGetAttValue(segments...)
		default:
			return NewErrUnknownIntrinsic(key)
		}
	}
	return nil
}
