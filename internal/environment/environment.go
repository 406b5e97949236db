// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

// Package environment contains the types and methods for fetching configuration from the local environment.
package environment

import "os"

const (
	fetchDefaultBaseDir    = ".samlib"     // fetchDefaultBaseDir is the default destination directory for fetched template bundles.
	fetchDefaultBaseDirEnv = "SAMLIB_DIR"  // fetchDefaultBaseDirEnv is the environment variable to override the default destination directory.
	buildDefaultBaseDir    = "."           // buildDefaultBaseDir is the default base directory for resolving code and content locations.
	buildDefaultBaseDirEnv = "SAMLIB_BASE" // buildDefaultBaseDirEnv is the environment variable to override the default base directory.
)

// SamLibDir contents of the `SAMLIB_DIR` environment variable, or the default which is `.samlib`.
func SamLibDir() string {
	dir := fetchDefaultBaseDir
	if d := os.Getenv(fetchDefaultBaseDirEnv); d != "" {
		dir = d
	}
	return dir
}

// BuildBaseDir contents of the `SAMLIB_BASE` environment variable, or the default which is the
// current working directory. Code and content locations resolve against this directory.
func BuildBaseDir() string {
	dir := buildDefaultBaseDir
	if d := os.Getenv(buildDefaultBaseDirEnv); d != "" {
		dir = d
	}
	return dir
}
