package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/branding"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/metadata"
	"github.com/spf13/cobra"
)

var (
	validateSchema    string
	validateAssetsDir string
	validateTolerance int64
)

var validateCmd = &cobra.Command{
	Use:   "validate <metadata.json>...",
	Short: "Validate asset metadata documents",
	Long: `Validate one or more asset metadata documents. Each argument is a path or a
glob pattern (** matches any number of directories).

Every document runs four checks: schema validation, that the referenced GLB
file exists under the assets directory, that its size matches the recorded
fileSize, and that the required fields are present. The command exits
non-zero unless every document passes every check.`,
	Example: `  ` + branding.CLIName() + ` validate assets/meta/station-home.json
  ` + branding.CLIName() + ` validate 'assets/meta/station-*.json'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Metadata schema path (default from config)")
	validateCmd.Flags().StringVar(&validateAssetsDir, "assets-dir", "", "Directory GLB paths are relative to (default from config)")
	validateCmd.Flags().Int64Var(&validateTolerance, "tolerance", metadata.DefaultTolerance, "Allowed file size difference in bytes (0 requires an exact match)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if validateTolerance < 0 {
		return fmt.Errorf("invalid --tolerance %d: must not be negative", validateTolerance)
	}

	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}

	schemaPath := settings.SchemaPath()
	if validateSchema != "" {
		schemaPath = settings.Resolve(validateSchema)
	}
	schema, err := metadata.LoadSchema(schemaPath)
	if err != nil {
		return err
	}

	assetsRoot := settings.AssetsRoot()
	if validateAssetsDir != "" {
		assetsRoot = settings.Resolve(validateAssetsDir)
	}
	v := &metadata.Validator{Schema: schema, AssetsRoot: assetsRoot, Tolerance: validateTolerance}

	passed := 0
	for _, path := range paths {
		doc, err := metadata.LoadDocument(path)
		if err != nil {
			fmt.Fprintf(out, "[FAIL] %v\n", err)
			continue
		}
		report := v.Validate(doc)
		printReport(out, doc, report)
		if report.Passed() {
			passed++
		}
	}

	if len(paths) > 1 {
		fmt.Fprintf(out, "%d of %d document(s) passed\n", passed, len(paths))
	}
	if passed != len(paths) {
		return errSilentExit
	}
	return nil
}

func printReport(w io.Writer, doc *metadata.Document, report *metadata.Report) {
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(w, "\n%s\nValidating: %s\n%s\n\n", rule, filepath.Base(doc.Path), rule)
	for _, c := range report.Checks {
		tag := "[ OK ]"
		if !c.Passed {
			tag = "[FAIL]"
		}
		fmt.Fprintf(w, "%s %s: %s\n", tag, c.Name, c.Detail)
	}

	fmt.Fprintf(w, "\n%s\nMetadata Summary\n%s\n", rule, rule)
	metadata.Summarize(doc).Write(w)
	fmt.Fprintf(w, "%s\n\n", rule)

	if report.Passed() {
		fmt.Fprintln(w, "[ OK ] All validation checks passed!")
	} else {
		fmt.Fprintln(w, "[FAIL] Some validation checks failed")
	}
	fmt.Fprintln(w)
}

// expandPatterns turns arguments into document paths. Arguments containing
// glob metacharacters must match at least one file; plain paths are passed
// through so a missing file is reported against its document.
func expandPatterns(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		if !doublestar.ValidatePathPattern(arg) {
			return nil, fmt.Errorf("invalid pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}
