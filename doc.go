// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

// Package samlib provides the data structures needed to load, validate and
// traverse nested serverless stack templates.
// It reads template documents from the supplied filesystems, links the
// nested-application declarations into a tree of stacks, and validates that
// every parameter indirection resolves within its own document.
//
// Relative locations in a document resolve against two different bases: a
// nested application's location resolves against the directory containing
// the document, while code and content locations resolve against an
// externally supplied base directory. Build tooling relies on this
// difference, so samlib preserves it.
//
// It is up to the caller to transform the loaded data into the required
// format for packaging or deployment.
package samlib
