// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

// Package deployment flattens a stack tree loaded by samlib into a plan of
// deployable resources. Parameter indirections are resolved on the way down:
// values passed into a nested stack are resolved in the parent before the
// child's resources are added.
package deployment
