// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

import "strings"

// ApplicationProperties represents the properties of a nested-application
// resource: a location pointing at another template document and the
// parameter values passed into it. A relative location resolves against the
// directory of the *containing* document. This differs from CodeUri and
// ContentUri resolution and the difference is part of the build tool's
// contract, so it must not be unified.
type ApplicationProperties struct {
	Location   Value            `yaml:"Location"   json:"Location"`
	Parameters map[string]Value `yaml:"Parameters" json:"Parameters"`
}

func (ap *ApplicationProperties) validate() error {
	if ap.Location.IsZero() {
		return NewErrPropertyMustNotBeEmpty(ResourceTypeApplication, "Location")
	}
	return nil
}

// LocalLocation returns the literal location string and true if the location
// is a static value that is not a remote URL.
func (ap *ApplicationProperties) LocalLocation() (string, bool) {
	loc, ok := ap.Location.Static()
	if !ok {
		return "", false
	}
	if IsRemoteLocation(loc) {
		return "", false
	}
	return loc, true
}

// IsRemoteLocation returns true if the supplied location string points at a
// remote template rather than a path on the local filesystem.
func IsRemoteLocation(loc string) bool {
	for _, scheme := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(loc, scheme) {
			return true
		}
	}
	return false
}
