// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleFunctionYAML = `
Type: AWS::Serverless::Function
Properties:
  CodeUri: before/function/
  Handler: app.lambda_handler
  Runtime: python3.8
  Tracing: Active
  Layers:
    - !Ref HelloWorldLayer
    - !Ref ParentLayer
`

const sampleLayerYAML = `
Type: AWS::Serverless::LayerVersion
Properties:
  LayerName: !Ref HelloWorldLayerName
  Description: Hello World Layer
  ContentUri: before/layer/
  CompatibleRuntimes:
    - python3.8
Metadata:
  BuildMethod: python3.8
`

const sampleApplicationYAML = `
Type: AWS::Serverless::Application
Properties:
  Location: child_child_stack/template.yaml
  Parameters:
    ParentLayer1: !Ref HelloWorldLayer
    ParentLayer2: !Ref ParentLayer
`

func TestResourceUnmarshalFunction(t *testing.T) {
	t.Parallel()
	res := new(Resource)
	require.NoError(t, yaml.Unmarshal([]byte(sampleFunctionYAML), res))
	assert.Equal(t, ResourceTypeFunction, res.Type)

	fp, err := res.Function()
	require.NoError(t, err)
	assert.Equal(t, "before/function/", fp.CodeURI)
	assert.Equal(t, "app.lambda_handler", fp.Handler)
	assert.Equal(t, "python3.8", fp.Runtime)
	assert.Equal(t, "Active", fp.Tracing)
	require.Len(t, fp.Layers, 2)
	assert.Equal(t, []string{"HelloWorldLayer", "ParentLayer"}, res.References())

	_, err = res.LayerVersion()
	assert.ErrorContains(t, err, "want 'AWS::Serverless::LayerVersion'")
}

func TestResourceUnmarshalLayerVersion(t *testing.T) {
	t.Parallel()
	res := new(Resource)
	require.NoError(t, yaml.Unmarshal([]byte(sampleLayerYAML), res))
	assert.Equal(t, ResourceTypeLayerVersion, res.Type)

	lp, err := res.LayerVersion()
	require.NoError(t, err)
	name, ok := lp.LayerName.Ref()
	assert.True(t, ok)
	assert.Equal(t, "HelloWorldLayerName", name)
	assert.Equal(t, "before/layer/", lp.ContentURI)
	assert.Equal(t, []string{"python3.8"}, lp.CompatibleRuntimes)
	assert.Equal(t, "python3.8", res.BuildMethod())
}

func TestResourceUnmarshalApplication(t *testing.T) {
	t.Parallel()
	res := new(Resource)
	require.NoError(t, yaml.Unmarshal([]byte(sampleApplicationYAML), res))
	assert.Equal(t, ResourceTypeApplication, res.Type)

	ap, err := res.Application()
	require.NoError(t, err)
	loc, ok := ap.LocalLocation()
	assert.True(t, ok)
	assert.Equal(t, "child_child_stack/template.yaml", loc)
	require.Len(t, ap.Parameters, 2)
	assert.Equal(t, []string{"HelloWorldLayer", "ParentLayer"}, res.References())
}

func TestResourceUnmarshalUnknownTypeKeepsRawProperties(t *testing.T) {
	t.Parallel()
	in := `
Type: AWS::ApiGateway::RestApi
Properties:
  Name: hello-api
`
	res := new(Resource)
	require.NoError(t, yaml.Unmarshal([]byte(in), res))
	assert.Equal(t, "AWS::ApiGateway::RestApi", res.Type)
	assert.Equal(t, "hello-api", res.RawProperties()["Name"])
	assert.Empty(t, res.References())
}

func TestResourceUnmarshalMissingRequiredProperty(t *testing.T) {
	t.Parallel()
	in := `
Type: AWS::Serverless::Function
Properties:
  Handler: app.lambda_handler
`
	res := new(Resource)
	err := yaml.Unmarshal([]byte(in), res)
	require.Error(t, err)
	assert.ErrorContains(t, err, "'CodeUri' must not be empty")
}

func TestResourceUnmarshalMissingType(t *testing.T) {
	t.Parallel()
	in := `
Properties:
  CodeUri: before/function/
`
	res := new(Resource)
	err := yaml.Unmarshal([]byte(in), res)
	require.Error(t, err)
	assert.ErrorContains(t, err, "'Type' must not be empty")
}

func TestResourceUnmarshalJSONFunction(t *testing.T) {
	t.Parallel()
	in := `{
		"Type": "AWS::Serverless::Function",
		"Properties": {
			"CodeUri": "before/function/",
			"Handler": "app.lambda_handler",
			"Runtime": "python3.8",
			"Layers": [{"Ref": "ParentLayer"}]
		}
	}`
	res := new(Resource)
	require.NoError(t, res.UnmarshalJSON([]byte(in)))
	fp, err := res.Function()
	require.NoError(t, err)
	assert.Equal(t, "before/function/", fp.CodeURI)
	assert.Equal(t, []string{"ParentLayer"}, res.References())
}
