// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/sambuild/samlib/template"
)

// Template documents are recognized by file name: either the canonical
// `template.<ext>` or a prefixed `<name>.template.<ext>`.
const templateFilePattern = `^(?:.+\.)?template\.(?:json|yaml|yml)$`

var templateFileRegex = regexp.MustCompile(templateFilePattern)

var supportedFileTypes = []string{".json", ".yaml", ".yml"}

// Result is the structure that gets built by scanning a template directory.
// Templates are keyed by their slash-separated path within the source FS, so
// the directory of each document is retained for location resolution.
type Result struct {
	Templates map[string]*template.Template
}

// ProcessorClient is the client that is used to process template directories.
type ProcessorClient struct {
	fs fs.FS
}

func NewProcessorClient(fs fs.FS) *ProcessorClient {
	return &ProcessorClient{
		fs: fs,
	}
}

// Process walks the supplied FS and unmarshals every template document found.
func (client *ProcessorClient) Process(res *Result) error {
	res.Templates = make(map[string]*template.Template)

	if err := fs.WalkDir(client.fs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("ProcessorClient.Process: error walking directory %s: %w", p, err)
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(supportedFileTypes, strings.ToLower(filepath.Ext(p))) {
			return nil
		}
		if !templateFileRegex.MatchString(strings.ToLower(d.Name())) {
			return nil
		}
		file, err := client.fs.Open(p)
		if err != nil {
			return fmt.Errorf("ProcessorClient.Process: error opening file %s: %w", p, err)
		}
		return readAndProcessFile(res, file, p)
	}); err != nil {
		return err
	}
	return nil
}

// processTemplate unmarshals the document bytes and adds the created
// template.Template to the result, keyed by document path.
func processTemplate(res *Result, unmar unmarshaler, docPath string) error {
	tmpl := new(template.Template)
	if err := unmar.unmarshal(tmpl); err != nil {
		return fmt.Errorf("processTemplate: error unmarshaling %s: %w", docPath, err)
	}
	if len(tmpl.Resources) == 0 {
		return fmt.Errorf("processTemplate: template %s declares no resources", docPath)
	}
	key := path.Clean(docPath)
	if _, exists := res.Templates[key]; exists {
		return fmt.Errorf("processTemplate: template with path `%s` already exists", key)
	}
	res.Templates[key] = tmpl
	return nil
}

// readAndProcessFile reads the file bytes and processes them as a template document.
func readAndProcessFile(res *Result, file fs.File, docPath string) error {
	defer file.Close() // nolint: errcheck
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("readAndProcessFile: error reading %s: %w", docPath, err)
	}

	unmar := newUnmarshaler(data, filepath.Ext(docPath))
	return processTemplate(res, unmar, docPath)
}
