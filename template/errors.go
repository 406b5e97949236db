// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import "fmt"

var _ error = (*ErrPropertyMustNotBeEmpty)(nil)
var _ error = (*ErrUnknownIntrinsic)(nil)
var _ error = (*ErrUnsupportedResourceType)(nil)

// ErrPropertyMustNotBeEmpty is an error type that indicates a required property is empty.
type ErrPropertyMustNotBeEmpty struct {
	ResourceType string
	PropertyName string
}

// Error implements the error interface for type ErrPropertyMustNotBeEmpty.
func (e *ErrPropertyMustNotBeEmpty) Error() string {
	return fmt.Sprintf("resource type '%s' property '%s' must not be empty", e.ResourceType, e.PropertyName)
}

// NewErrPropertyMustNotBeEmpty creates a new ErrPropertyMustNotBeEmpty error.
func NewErrPropertyMustNotBeEmpty(resourceType, propertyName string) error {
	return &ErrPropertyMustNotBeEmpty{ResourceType: resourceType, PropertyName: propertyName}
}

// ErrUnknownIntrinsic is an error type that indicates a property value uses an
// intrinsic function that is not supported.
type ErrUnknownIntrinsic struct {
	Name string
}

// Error implements the error interface for type ErrUnknownIntrinsic.
func (e *ErrUnknownIntrinsic) Error() string {
	return fmt.Sprintf("unknown intrinsic function '%s'", e.Name)
}

// NewErrUnknownIntrinsic creates a new ErrUnknownIntrinsic error.
func NewErrUnknownIntrinsic(name string) error {
	return &ErrUnknownIntrinsic{Name: name}
}

// ErrUnsupportedResourceType is an error type that indicates a typed accessor
// was used on a resource of a different type.
type ErrUnsupportedResourceType struct {
	Want string
	Got  string
}

// Error implements the error interface for type ErrUnsupportedResourceType.
func (e *ErrUnsupportedResourceType) Error() string {
	return fmt.Sprintf("resource type is '%s', want '%s'", e.Got, e.Want)
}

// NewErrUnsupportedResourceType creates a new ErrUnsupportedResourceType error.
func NewErrUnsupportedResourceType(want, got string) error {
	return &ErrUnsupportedResourceType{Want: want, Got: got}
}
