package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const personSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "age": {"type": "integer", "minimum": 0}
  }
}`

func TestCompile_Valid(t *testing.T) {
	s, err := Compile("person.schema.json", []byte(personSchema))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if s == nil {
		t.Fatal("Compile() returned nil schema")
	}
}

func TestCompile_MalformedJSON(t *testing.T) {
	if _, err := Compile("bad.schema.json", []byte(`{"type": `)); err == nil {
		t.Fatal("expected error for malformed schema JSON, got nil")
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	if _, err := Compile("invalid.schema.json", []byte(`{"type": 42}`)); err == nil {
		t.Fatal("expected error for invalid schema, got nil")
	}
}

func TestCompileFile_NotFound(t *testing.T) {
	if _, err := CompileFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing schema file, got nil")
	}
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "person.schema.json")
	if err := os.WriteFile(path, []byte(personSchema), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := CompileFile(path); err != nil {
		t.Fatalf("CompileFile() error: %v", err)
	}
}

func TestCheck(t *testing.T) {
	s, err := Compile("person.schema.json", []byte(personSchema))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantPath  string
		wantKw    string
	}{
		{"valid", `{"name": "ada", "age": 36}`, true, "", ""},
		{"missing name", `{"age": 36}`, false, "", "required"},
		{"wrong type", `{"name": "ada", "age": "old"}`, false, "/age", "type"},
		{"below minimum", `{"name": "ada", "age": -1}`, false, "/age", "minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := DecodeJSON([]byte(tt.doc))
			if err != nil {
				t.Fatalf("DecodeJSON() error: %v", err)
			}
			result, err := Check(s, inst)
			if err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (issues: %v)", result.Valid, tt.wantValid, result.Issues)
			}
			if tt.wantValid {
				return
			}
			first := result.First()
			if first.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", first.Path, tt.wantPath)
			}
			if first.Keyword != tt.wantKw {
				t.Errorf("Keyword = %q, want %q", first.Keyword, tt.wantKw)
			}
			if first.Message == "" {
				t.Error("expected a non-empty message")
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	root := Issue{Message: "missing property 'name'"}
	if got := root.String(); got != "missing property 'name'" {
		t.Errorf("String() = %q", got)
	}
	nested := Issue{Path: "/age", Message: "got string, want integer"}
	if got := nested.String(); !strings.HasPrefix(got, "/age: ") {
		t.Errorf("String() = %q, want /age prefix", got)
	}
}

func TestDeduplicate(t *testing.T) {
	in := []Issue{
		{Path: "/a", Keyword: "type", Message: "m"},
		{Path: "/a", Keyword: "type", Message: "m"},
		{Path: "/b", Keyword: "type", Message: "m"},
	}
	if got := deduplicate(in); len(got) != 2 {
		t.Errorf("deduplicate() returned %d issues, want 2", len(got))
	}
}
