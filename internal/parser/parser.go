// Package parser reads Gherkin feature files into the flat model used by
// the check command: scenarios as godog will run them, each with its
// resolved steps and source lines.
package parser

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// Document is a parsed feature file together with its compiled pickles.
type Document struct {
	URI     string
	Gherkin *messages.GherkinDocument
	Pickles []*messages.Pickle
}

// Parse parses the feature file content. uri names the file in the
// returned document and in errors.
func Parse(uri string, content []byte) (*Document, error) {
	newID := (&messages.Incrementing{}).NewId

	gd, err := gherkin.ParseGherkinDocument(bytes.NewReader(content), newID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	gd.Uri = uri

	return &Document{
		URI:     uri,
		Gherkin: gd,
		Pickles: gherkin.Pickles(*gd, uri, newID),
	}, nil
}

// ParseFS parses every .feature file found under paths in fsys. A path
// may name a file or a directory, which is walked recursively.
func ParseFS(fsys fs.FS, paths []string) ([]*ParsedFile, error) {
	var files []*ParsedFile
	seen := map[string]bool{}

	parse := func(p string) error {
		if seen[p] {
			return nil
		}
		seen[p] = true

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		doc, err := Parse(p, content)
		if err != nil {
			return err
		}
		files = append(files, Transform(doc))
		return nil
	}

	for _, root := range paths {
		info, err := fs.Stat(fsys, root)
		if err != nil {
			return nil, fmt.Errorf("feature path %q is not available: %w", root, err)
		}
		if !info.IsDir() {
			if err := parse(root); err != nil {
				return nil, err
			}
			continue
		}

		err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".feature") {
				return nil
			}
			return parse(p)
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
