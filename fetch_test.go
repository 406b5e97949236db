// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package samlib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTemplateReference(t *testing.T) {
	t.Parallel()
	ref := NewLocalTemplateReference("./testdata/nested")
	assert.Equal(t, "./testdata/nested", ref.String())

	source, err := ref.Fetch(context.Background(), "unused")
	require.NoError(t, err)

	sl := NewSamLib(nil)
	require.NoError(t, sl.Init(context.Background(), source))
	assert.Equal(t, []string{"root", "root/ChildChildStack"}, sl.Stacks())
}

func TestLocalTemplateReferenceNotADirectory(t *testing.T) {
	t.Parallel()
	ref := NewLocalTemplateReference("./testdata/nested/template.yaml")
	_, err := ref.Fetch(context.Background(), "unused")
	assert.ErrorContains(t, err, "not a directory")
}

func TestLocalTemplateReferenceNotFound(t *testing.T) {
	t.Parallel()
	ref := NewLocalTemplateReference("./testdata/does-not-exist")
	_, err := ref.Fetch(context.Background(), "unused")
	assert.ErrorContains(t, err, "could not fetch template bundle")
}

func TestFetchTemplateBundleByGetterString(t *testing.T) {
	t.Setenv("SAMLIB_DIR", t.TempDir())

	source, err := FetchTemplateBundleByGetterString(context.Background(), "./testdata/nested", "fetched")
	require.NoError(t, err)

	sl := NewSamLib(nil)
	require.NoError(t, sl.Init(context.Background(), source))
	assert.Equal(t, []string{"child_child_stack/template.yaml", "template.yaml"}, sl.Templates())
}

func TestRemoteTemplateReferenceString(t *testing.T) {
	t.Parallel()
	ref := NewRemoteTemplateReference("git::https://example.com/templates.git")
	assert.Equal(t, "git::https://example.com/templates.git", ref.String())
}
