// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamLibDir(t *testing.T) {
	t.Setenv("SAMLIB_DIR", "")
	assert.Equal(t, ".samlib", SamLibDir())
	t.Setenv("SAMLIB_DIR", "/tmp/bundles")
	assert.Equal(t, "/tmp/bundles", SamLibDir())
}

func TestBuildBaseDir(t *testing.T) {
	t.Setenv("SAMLIB_BASE", "")
	assert.Equal(t, ".", BuildBaseDir())
	t.Setenv("SAMLIB_BASE", "/src/app")
	assert.Equal(t, "/src/app", BuildBaseDir())
}
