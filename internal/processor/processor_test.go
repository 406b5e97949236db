// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sambuild/samlib/template"
)

func TestProcessNestedStackDirectory(t *testing.T) {
	t.Parallel()
	fs := os.DirFS("./testdata/nested")
	pc := NewProcessorClient(fs)
	res := new(Result)
	require.NoError(t, pc.Process(res))

	require.Len(t, res.Templates, 2)
	root, ok := res.Templates["template.yaml"]
	require.True(t, ok)
	child, ok := res.Templates["child_child_stack/template.yaml"]
	require.True(t, ok)

	assert.Equal(t, []string{"HelloWorldLayerName", "ParentLayer"}, root.ParameterNames())
	assert.Equal(t, []string{"ChildChildStack", "HelloWorldFunction", "HelloWorldLayer"}, root.ResourceNames())
	assert.Equal(t, []string{"ParentLayer1", "ParentLayer2"}, child.ParameterNames())
}

func TestProcessJSONTemplate(t *testing.T) {
	t.Parallel()
	fs := os.DirFS("./testdata/json")
	pc := NewProcessorClient(fs)
	res := new(Result)
	require.NoError(t, pc.Process(res))

	require.Len(t, res.Templates, 1)
	tmpl := res.Templates["template.json"]
	require.NotNil(t, tmpl)
	assert.Equal(t, []string{"HelloWorldFunction"}, tmpl.Functions())

	layer := tmpl.Resources["HelloWorldLayer"]
	require.NotNil(t, layer)
	lp, err := layer.LayerVersion()
	require.NoError(t, err)
	name, ok := lp.LayerName.Ref()
	assert.True(t, ok)
	assert.Equal(t, "LayerName", name)
}

func TestProcessTemplateWithoutResources(t *testing.T) {
	t.Parallel()
	fs := os.DirFS("./testdata/invalid")
	pc := NewProcessorClient(fs)
	res := new(Result)
	assert.ErrorContains(t, pc.Process(res), "declares no resources")
}

func TestProcessIgnoresUnrelatedFiles(t *testing.T) {
	t.Parallel()
	res := new(Result)
	unmar := newUnmarshaler([]byte("Resources: {}"), ".txt")
	assert.ErrorContains(t, processTemplate(res, unmar, "notes.txt"), "unsupported extension")
}

func TestProcessTemplateDuplicatePath(t *testing.T) {
	t.Parallel()
	res := &Result{Templates: map[string]*template.Template{
		"template.yaml": {},
	}}
	unmar := newUnmarshaler([]byte(validMinimalTemplate), ".yaml")
	assert.ErrorContains(t, processTemplate(res, unmar, "template.yaml"), "already exists")
}

const validMinimalTemplate = `
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      CodeUri: fn/
      Handler: app.handler
`

func TestUnmarshalerExtensionNormalization(t *testing.T) {
	t.Parallel()
	var dst map[string]any
	u := newUnmarshaler([]byte(`{"a": 1}`), "json")
	require.NoError(t, u.unmarshal(&dst))
	assert.EqualValues(t, 1, dst["a"])
}
