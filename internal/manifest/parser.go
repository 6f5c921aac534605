package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/platform"
)

// Load reads and validates the asset list at path.
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse validates and decodes an asset list. source names the document in
// error messages.
func Parse(data []byte, source string) (*Document, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, &MalformedError{Source: source, Err: err}
	}
	if !result.Valid {
		return nil, &MalformedError{Source: source, Issues: result.Issues}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedError{Source: source, Err: err}
	}
	if issues := checkUnique(&doc); len(issues) > 0 {
		return nil, &MalformedError{Source: source, Issues: issues}
	}
	return &doc, nil
}

// Marshal encodes doc the way it is stored on disk: two-space indented JSON
// with a trailing newline.
func Marshal(doc *Document) ([]byte, error) {
	if doc.Assets == nil {
		doc.Assets = []*Asset{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding asset list: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes doc to path atomically. Readers see either the old or the new
// document, never a partial write.
func Save(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("saving asset list %s: %w", path, err)
	}
	return nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
