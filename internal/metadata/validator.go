package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefaultTolerance is the allowed difference, in bytes, between the recorded
// and the actual artifact size.
const DefaultTolerance = 1024

// Check names, in evaluation order.
const (
	CheckSchema   = "Schema validation"
	CheckFile     = "GLB file exists"
	CheckFileSize = "File size matches"
	CheckRequired = "Required fields"
)

// RequiredFields are the top-level keys every metadata document must carry.
var RequiredFields = []string{"id", "category", "file", "section"}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// Report holds the results of every check for one document.
type Report struct {
	Path   string
	Checks []CheckResult
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Validator checks metadata documents against a schema and the artifacts on disk.
type Validator struct {
	Schema *jsonschema.Schema
	// AssetsRoot is the directory the document's "file" is relative to.
	AssetsRoot string
	// Tolerance in bytes. Zero requires an exact size match.
	Tolerance int64
}

// NewValidator returns a Validator using DefaultTolerance.
func NewValidator(schema *jsonschema.Schema, assetsRoot string) *Validator {
	return &Validator{Schema: schema, AssetsRoot: assetsRoot, Tolerance: DefaultTolerance}
}

func (v *Validator) tolerance() int64 {
	return max(v.Tolerance, 0)
}

// Validate runs every check against doc.
func (v *Validator) Validate(doc *Document) *Report {
	artifact, fileErr := v.artifact(doc)

	return &Report{
		Path: doc.Path,
		Checks: []CheckResult{
			v.checkSchema(doc),
			checkFile(fileErr),
			v.checkFileSize(doc, artifact, fileErr),
			checkRequired(doc),
		},
	}
}

func (v *Validator) checkSchema(doc *Document) CheckResult {
	res, err := schema.Check(v.Schema, doc.Value)
	if err != nil {
		return fail(CheckSchema, "Failed: Schema error: %v", err)
	}
	if !res.Valid {
		return fail(CheckSchema, "Failed: Validation error: %s", res.First())
	}
	return pass(CheckSchema, "Passed")
}

// errArtifactMissing marks a referenced artifact that is not on disk.
var errArtifactMissing = errors.New("GLB file not found")

// artifact resolves and stats the GLB referenced by doc.
func (v *Validator) artifact(doc *Document) (fs.FileInfo, error) {
	raw, ok := doc.Field("file")
	if !ok {
		return nil, errors.New(`no "file" field`)
	}
	rel, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf(`"file" must be a string, got %T`, raw)
	}
	if rel == "" {
		return nil, errors.New(`"file" is empty`)
	}
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%s escapes the assets root", rel)
	}

	full := filepath.Join(v.AssetsRoot, rel)
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errArtifactMissing, full)
		}
		return nil, fmt.Errorf("checking %s: %w", full, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", full)
	}
	return info, nil
}

func checkFile(err error) CheckResult {
	if err != nil {
		return fail(CheckFile, "Failed: %v", err)
	}
	return pass(CheckFile, "Passed")
}

func (v *Validator) checkFileSize(doc *Document, info fs.FileInfo, fileErr error) CheckResult {
	// Reported by the file check.
	if fileErr != nil {
		return pass(CheckFileSize, "Passed")
	}

	recorded := 0.0
	if raw, ok := doc.Meta("fileSize"); ok {
		n, ok := number(raw)
		if !ok {
			return fail(CheckFileSize, "Failed: metadata.fileSize is not a number: %v", raw)
		}
		recorded = n
	}

	actual := info.Size()
	if math.Abs(float64(actual)-recorded) > float64(v.tolerance()) {
		return fail(CheckFileSize, "Failed: File size mismatch: actual=%d, metadata=%s", actual, formatNumber(recorded))
	}
	return pass(CheckFileSize, "Passed")
}

func checkRequired(doc *Document) CheckResult {
	var missing []string
	for _, key := range RequiredFields {
		if _, ok := doc.Field(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fail(CheckRequired, "Missing: %s", strings.Join(missing, ", "))
	}
	return pass(CheckRequired, "All present")
}

func pass(name, detail string) CheckResult {
	return CheckResult{Name: name, Passed: true, Detail: detail}
}

func fail(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Detail: fmt.Sprintf(format, args...)}
}

// formatNumber prints whole numbers without a fraction.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
