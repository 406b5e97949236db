// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValueUnmarshalYAMLShortTags(t *testing.T) {
	t.Parallel()
	in := `
ref: !Ref MyLayer
sub: !Sub arn:aws:lambda:${AWS::Region}:${AWS::AccountId}:layer:${LayerName}
getatt: !GetAtt ChildStack.Outputs.LayerArn
plain: python3.8
`
	var got map[string]Value
	require.NoError(t, yaml.Unmarshal([]byte(in), &got))

	ref, ok := got["ref"].Ref()
	assert.True(t, ok)
	assert.Equal(t, "MyLayer", ref)

	sub, ok := got["sub"].Sub()
	assert.True(t, ok)
	assert.Contains(t, sub, "${LayerName}")

	segments, ok := got["getatt"].GetAtt()
	assert.True(t, ok)
	assert.Equal(t, []string{"ChildStack", "Outputs", "LayerArn"}, segments)

	plain, ok := got["plain"].Static()
	assert.True(t, ok)
	assert.Equal(t, "python3.8", plain)
}

func TestValueUnmarshalYAMLLongForm(t *testing.T) {
	t.Parallel()
	in := `
ref:
  Ref: MyLayer
getatt:
  Fn::GetAtt: [ChildStack, Outputs.LayerArn]
`
	var got map[string]Value
	require.NoError(t, yaml.Unmarshal([]byte(in), &got))

	ref, ok := got["ref"].Ref()
	assert.True(t, ok)
	assert.Equal(t, "MyLayer", ref)

	segments, ok := got["getatt"].GetAtt()
	assert.True(t, ok)
	assert.Equal(t, "ChildStack", segments[0])
}

func TestValueUnmarshalJSON(t *testing.T) {
	t.Parallel()
	in := `{
		"ref": {"Ref": "ParentLayer"},
		"sub": {"Fn::Sub": "${HelloWorldLayerName}-suffix"},
		"plain": "app.lambda_handler"
	}`
	var got map[string]Value
	require.NoError(t, json.Unmarshal([]byte(in), &got))

	ref, ok := got["ref"].Ref()
	assert.True(t, ok)
	assert.Equal(t, "ParentLayer", ref)

	assert.Equal(t, []string{"HelloWorldLayerName"}, got["sub"].References())

	plain, ok := got["plain"].Static()
	assert.True(t, ok)
	assert.Equal(t, "app.lambda_handler", plain)
}

func TestValueUnmarshalYAMLUnknownIntrinsic(t *testing.T) {
	t.Parallel()
	var got Value
	err := yaml.Unmarshal([]byte("Fn::ImportValue: SomeExport"), &got)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown intrinsic function")
}

func TestValueReferencesExcludePseudoParameters(t *testing.T) {
	t.Parallel()
	v := NewSubValue("arn:aws:lambda:${AWS::Region}:${AWS::AccountId}:layer:${LayerName}")
	assert.Equal(t, []string{"LayerName"}, v.References())
}

func TestValueReferencesSubGetAttVariable(t *testing.T) {
	t.Parallel()
	v := NewSubValue("${ChildStack.Outputs.LayerArn}")
	assert.Equal(t, []string{"ChildStack"}, v.References())
}

func TestValueString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "!Ref ParentLayer", NewRefValue("ParentLayer").String())
	assert.Equal(t, "!GetAtt Child.Arn", NewGetAttValue("Child", "Arn").String())
	assert.Equal(t, "plain", NewStringValue("plain").String())
}
