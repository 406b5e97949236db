// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

// Package errcheck provides an error collector used by the library checks to
// report every finding of a check rather than stopping at the first.
package errcheck
