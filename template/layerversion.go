// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package template

// LayerVersionProperties represents the properties of a layer-version resource.
// ContentURI resolves against the externally supplied base directory, the same
// way as a function's CodeURI.
type LayerVersionProperties struct {
	LayerName          Value    `yaml:"LayerName"          json:"LayerName"`
	Description        string   `yaml:"Description"        json:"Description"`
	ContentURI         string   `yaml:"ContentUri"         json:"ContentUri"`
	CompatibleRuntimes []string `yaml:"CompatibleRuntimes" json:"CompatibleRuntimes"`
	RetentionPolicy    string   `yaml:"RetentionPolicy"    json:"RetentionPolicy"`
}

func (lp *LayerVersionProperties) validate() error {
	if lp.LayerName.IsZero() {
		return NewErrPropertyMustNotBeEmpty(ResourceTypeLayerVersion, "LayerName")
	}
	if lp.ContentURI == "" {
		return NewErrPropertyMustNotBeEmpty(ResourceTypeLayerVersion, "ContentUri")
	}
	return nil
}
