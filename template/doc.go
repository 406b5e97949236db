// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

// Package template provides the types used to model a serverless template
// document: the template root with its globals and parameters, the resource
// declarations as a tagged variant, and the intrinsic short-hand references
// used for parameter indirection.
//
// The types unmarshal from both YAML and JSON. Use the typed accessors on
// Resource to obtain the properties matching the resource type tag.
package template
