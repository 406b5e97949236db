// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sambuild/samlib/to"
)

const sampleTemplateYAML = `
AWSTemplateFormatVersion: '2010-09-09'
Transform: AWS::Serverless-2016-10-31
Globals:
  Function:
    Timeout: 10
Parameters:
  ParentLayer:
    Type: String
    Description: parent layer arn
  HelloWorldLayerName:
    Type: String
    Description: Name of the layer
Resources:
  HelloWorldFunction:
    Type: AWS::Serverless::Function
    Properties:
      CodeUri: before/function/
      Handler: app.lambda_handler
      Runtime: python3.8
      Tracing: Active
      Layers:
        - !Ref HelloWorldLayer
        - !Ref ParentLayer
  HelloWorldLayer:
    Type: AWS::Serverless::LayerVersion
    Properties:
      LayerName: !Ref HelloWorldLayerName
      Description: Hello World Layer
      ContentUri: before/layer/
      CompatibleRuntimes:
        - python3.8
    Metadata:
      BuildMethod: python3.8
  ChildChildStack:
    Type: AWS::Serverless::Application
    Properties:
      Location: child_child_stack/template.yaml
      Parameters:
        ParentLayer1: !Ref HelloWorldLayer
        ParentLayer2: !Ref ParentLayer
`

func TestTemplateUnmarshal(t *testing.T) {
	t.Parallel()
	tmpl := new(Template)
	require.NoError(t, yaml.Unmarshal([]byte(sampleTemplateYAML), tmpl))

	assert.Equal(t, "2010-09-09", tmpl.AWSTemplateFormatVersion)
	assert.Equal(t, "AWS::Serverless-2016-10-31", tmpl.Transform)
	assert.Equal(t, []string{"HelloWorldLayerName", "ParentLayer"}, tmpl.ParameterNames())
	assert.Equal(t, []string{"ChildChildStack", "HelloWorldFunction", "HelloWorldLayer"}, tmpl.ResourceNames())
	assert.Equal(t, []string{"HelloWorldFunction"}, tmpl.Functions())
	assert.Equal(t, []string{"HelloWorldLayer"}, tmpl.Layers())
	assert.Equal(t, []string{"ChildChildStack"}, tmpl.Applications())

	require.NotNil(t, tmpl.Globals)
	require.NotNil(t, tmpl.Globals.Function)
	require.NotNil(t, tmpl.Globals.Function.Timeout)
	assert.Equal(t, 10, *tmpl.Globals.Function.Timeout)
}

func TestTemplateDeclaresReferenceTarget(t *testing.T) {
	t.Parallel()
	tmpl := new(Template)
	require.NoError(t, yaml.Unmarshal([]byte(sampleTemplateYAML), tmpl))

	assert.True(t, tmpl.DeclaresReferenceTarget("ParentLayer"))
	assert.True(t, tmpl.DeclaresReferenceTarget("HelloWorldLayer"))
	assert.False(t, tmpl.DeclaresReferenceTarget("NoSuchTarget"))
}

func TestFunctionGlobalsApplyTo(t *testing.T) {
	t.Parallel()
	g := &FunctionGlobals{
		Timeout:    to.Ptr(10),
		MemorySize: to.Ptr(128),
		Runtime:    "python3.8",
		Tracing:    "Active",
	}

	fp := &FunctionProperties{
		CodeURI: "fn/",
		Handler: "app.lambda_handler",
		Timeout: to.Ptr(30),
		Runtime: "ruby3.2",
	}
	g.ApplyTo(fp)

	assert.Equal(t, 30, *fp.Timeout)
	assert.Equal(t, "ruby3.2", fp.Runtime)
	assert.Equal(t, 128, *fp.MemorySize)
	assert.Equal(t, "Active", fp.Tracing)
}
