package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/asset-list.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// ErrMalformed is matched by every error caused by the content of an asset
// list (as opposed to I/O failures).
var ErrMalformed = errors.New("malformed asset list")

// MalformedError reports why an asset list document was rejected.
type MalformedError struct {
	Source string
	Issues []schema.Issue
	Err    error
}

func (e *MalformedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrMalformed.Error(), e.Source)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  - %s", issue.String())
	}
	return b.String()
}

// Is lets errors.Is match ErrMalformed.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Unwrap returns the underlying decode error, if any.
func (e *MalformedError) Unwrap() error { return e.Err }

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = schema.Compile("asset-list.schema.json", schemaBytes)
	})
	return compiledSchema, compileErr
}

// Validate checks raw JSON bytes against the asset list schema.
// The error return is for JSON syntax or schema compilation failures;
// schema violations are returned in the Result.
func Validate(data []byte) (*schema.Result, error) {
	s, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading asset list schema: %w", err)
	}

	inst, err := schema.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return schema.Check(s, inst)
}

// checkUnique reports assets that share an id.
func checkUnique(doc *Document) []schema.Issue {
	var issues []schema.Issue
	seen := make(map[string]int, len(doc.Assets))
	for i, a := range doc.Assets {
		if first, ok := seen[a.ID]; ok {
			issues = append(issues, schema.Issue{
				Path:    fmt.Sprintf("/assets/%d/id", i),
				Message: fmt.Sprintf("duplicate id %q (first at /assets/%d)", a.ID, first),
				Keyword: "unique",
			})
			continue
		}
		seen[a.ID] = i
	}
	return issues
}
