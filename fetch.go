// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package samlib

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter/v2"

	"github.com/sambuild/samlib/internal/environment"
)

// TemplateReference is an interface that represents a source of template
// documents. It can be fetched from either a local directory or a remote
// go-getter URL.
type TemplateReference interface {
	Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error)
	String() string
}

var _ TemplateReference = (*LocalTemplateReference)(nil)
var _ TemplateReference = (*RemoteTemplateReference)(nil)

// LocalTemplateReference is a template source that is already present on the
// local filesystem.
type LocalTemplateReference struct {
	path string
}

func NewLocalTemplateReference(path string) *LocalTemplateReference {
	return &LocalTemplateReference{
		path: path,
	}
}

// Fetch returns the referenced directory as an fs.FS. No copy is made.
func (r *LocalTemplateReference) Fetch(_ context.Context, _ string) (fs.FS, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return nil, fmt.Errorf("could not fetch template bundle %s: %w", r.path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("could not fetch template bundle %s: not a directory", r.path)
	}
	return os.DirFS(r.path), nil
}

// String returns the local path of the template bundle.
func (r *LocalTemplateReference) String() string {
	return r.path
}

// RemoteTemplateReference is a template source that is fetched from a
// go-getter URL.
type RemoteTemplateReference struct {
	url string
}

func NewRemoteTemplateReference(url string) *RemoteTemplateReference {
	return &RemoteTemplateReference{
		url: url,
	}
}

// Fetch fetches the template bundle from the go-getter URL.
func (r *RemoteTemplateReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	return FetchTemplateBundleByGetterString(ctx, r.url, destinationDirectory)
}

// String returns the URL of the template bundle.
func (r *RemoteTemplateReference) String() string {
	return r.url
}

// FetchTemplateBundleByGetterString fetches a template bundle from the
// supplied go-getter string and stores it in a subdirectory of the samlib
// working directory (`.samlib`, override with the `SAMLIB_DIR` environment
// variable). The returned fs.FS can be passed to SamLib.Init.
func FetchTemplateBundleByGetterString(ctx context.Context, src, dstDir string) (fs.FS, error) {
	dst := filepath.Join(environment.SamLibDir(), dstDir)
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("FetchTemplateBundleByGetterString: error getting working directory: %w", err)
	}
	client := getter.Client{}
	req := &getter.Request{
		Src: src,
		Dst: dst,
		Pwd: wd,
	}
	if _, err := client.Get(ctx, req); err != nil {
		return nil, fmt.Errorf("could not fetch template bundle %s: %w", src, err)
	}
	return os.DirFS(dst), nil
}
