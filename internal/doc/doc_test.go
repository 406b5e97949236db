// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambuild/samlib"
)

func TestStackTreeMd(t *testing.T) {
	t.Parallel()
	sl := samlib.NewSamLib(nil)
	require.NoError(t, sl.Init(context.Background(), os.DirFS("../../testdata/nested")))

	var buf bytes.Buffer
	require.NoError(t, StackTreeMd(&buf, sl))
	out := buf.String()

	assert.Contains(t, out, "# Stacks")
	assert.Contains(t, out, "## `root`")
	assert.Contains(t, out, "## `root/ChildChildStack`")
	assert.Contains(t, out, "Document: `child_child_stack/template.yaml`")
	assert.Contains(t, out, "- `HelloWorldFunction` (AWS::Serverless::Function): runtime python3.8, code before/function/")
	assert.Contains(t, out, "- `ChildChildStack` (AWS::Serverless::Application): location child_child_stack/template.yaml (resolved child_child_stack/template.yaml)")
	assert.Contains(t, out, "- `ParentLayer` (String): ARN of the layer passed in by the parent stack")
}
