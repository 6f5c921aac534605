package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Document is a decoded metadata document. Numbers are kept as json.Number.
type Document struct {
	Path  string
	Value any
}

// LoadSchema compiles the metadata schema at path.
func LoadSchema(path string) (*jsonschema.Schema, error) {
	s, err := schema.CompileFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading metadata schema: %w", err)
	}
	return s, nil
}

// LoadDocument reads and decodes the metadata document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	v, err := schema.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	return &Document{Path: path, Value: v}, nil
}

// Field returns a top-level key of the document.
func (d *Document) Field(key string) (any, bool) {
	obj, ok := d.Value.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// Meta returns a key of the nested "metadata" object.
func (d *Document) Meta(key string) (any, bool) {
	m, ok := d.Field("metadata")
	if !ok {
		return nil, false
	}
	obj, ok := m.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// Polycount returns metadata.polycount when it is an integer.
func (d *Document) Polycount() (int64, bool) {
	v, ok := d.Meta("polycount")
	if !ok {
		return 0, false
	}
	n, ok := number(v)
	if !ok || n != float64(int64(n)) {
		return 0, false
	}
	return int64(n), true
}

// number converts a decoded JSON number to float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
