package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/generator"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/logger"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/manifest"
	"go.uber.org/zap"
)

const (
	ruleWidth   = 70
	stderrLimit = 2048
)

// Options control a single batch run.
type Options struct {
	// ID restricts the run to one asset.
	ID string
	// Force regenerates assets whatever their status.
	Force bool
	// DryRun prints the plan without generating or saving anything.
	DryRun bool
}

// Driver runs generation batches against an asset list.
type Driver struct {
	Generator generator.Generator
	// Out receives human-readable progress. Defaults to os.Stdout.
	Out io.Writer
	// Log receives structured diagnostics. Defaults to the process logger.
	Log *zap.Logger
	// Now is the clock used for status timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of generating one asset.
type Result struct {
	Asset  *manifest.Asset
	Output *generator.Output
	Err    error
}

// Succeeded reports whether the generator ran and exited zero.
func (r Result) Succeeded() bool {
	return r.Err == nil && r.Output.Succeeded()
}

// Summary describes a finished (or planned) batch.
type Summary struct {
	RunID     string
	Selected  int
	Succeeded int
	Failed    int
	Results   []Result
	DryRun    bool
	// Saved is true when the asset list was rewritten.
	Saved bool
}

// OK reports whether no selected asset failed.
func (s *Summary) OK() bool {
	return s.Failed == 0
}

func (d *Driver) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

// runLogger returns the logger for one run, tagged with its id.
func (d *Driver) runLogger(runID string) *zap.Logger {
	field := zap.String("run_id", runID)
	if d.Log == nil {
		return logger.With(field)
	}
	return d.Log.With(field)
}

func (d *Driver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Run loads the asset list at path and processes it according to opts.
// The asset list is rewritten only after every selected asset has been
// attempted; an interrupted run leaves the file untouched.
func (d *Driver) Run(ctx context.Context, path string, opts Options) (*Summary, error) {
	w := d.out()
	summary := &Summary{RunID: uuid.NewString(), DryRun: opts.DryRun}
	log := d.runLogger(summary.RunID)

	doc, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	sel := d.Plan(doc, path, opts)
	if len(sel.Selected) == 0 {
		return summary, nil
	}
	summary.Selected = len(sel.Selected)

	log.Info("generation planned",
		zap.String("manifest", path),
		zap.Int("assets", len(doc.Assets)),
		zap.Int("selected", len(sel.Selected)),
		zap.Bool("force", opts.Force),
		zap.Bool("dry_run", opts.DryRun),
	)

	if opts.DryRun {
		fmt.Fprintln(w, "\nDry run mode - no assets were generated")
		return summary, nil
	}

	fmt.Fprintln(w)
	banner(w, "Starting generation...")

	for _, a := range sel.Selected {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("generation interrupted before %s, asset list not saved: %w", a.ID, err)
		}

		result := d.generate(ctx, log, a)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, fmt.Errorf("generation interrupted during %s, asset list not saved: %w", a.ID, ctxErr)
		}

		summary.Results = append(summary.Results, result)
		if result.Succeeded() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	doc.Updated = manifest.NewTimestamp(d.now())
	if err := manifest.Save(path, doc); err != nil {
		return summary, err
	}
	summary.Saved = true
	fmt.Fprintf(w, "\n[ OK ] Updated asset list: %s\n", path)

	fmt.Fprintln(w)
	banner(w, "Generation Summary")
	fmt.Fprintf(w, "Total: %d\n", summary.Selected)
	fmt.Fprintf(w, "Success: %d\n", summary.Succeeded)
	fmt.Fprintf(w, "Failed: %d\n", summary.Failed)
	rule(w)
	fmt.Fprintln(w)

	log.Info("generation finished",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// Plan selects the assets to generate and prints the plan for them.
func (d *Driver) Plan(doc *manifest.Document, path string, opts Options) manifest.Selection {
	w := d.out()

	banner(w, "Asset Automation")
	fmt.Fprintf(w, "Config: %s\n", path)
	fmt.Fprintf(w, "Generator: %s\n", generator.Describe(d.Generator))
	fmt.Fprintf(w, "Dry run: %t\n", opts.DryRun)
	rule(w)
	fmt.Fprintln(w)

	if len(doc.Assets) == 0 {
		fmt.Fprintln(w, "No assets found in config")
		return manifest.Selection{}
	}
	fmt.Fprintf(w, "Found %d asset(s) in config\n\n", len(doc.Assets))

	sel := manifest.Select(doc, manifest.Filter{ID: opts.ID, Force: opts.Force})
	for _, a := range sel.Skipped {
		fmt.Fprintf(w, "[SKIP] %s (status: %s)\n", a.ID, a.EffectiveStatus())
	}
	if opts.ID != "" && sel.Matched == 0 {
		fmt.Fprintf(w, "[WARN] No asset with id %q in config\n", opts.ID)
	}

	if len(sel.Selected) == 0 {
		fmt.Fprintln(w, "\nNo assets to generate")
		return sel
	}

	fmt.Fprintf(w, "\n%d asset(s) will be generated:\n\n", len(sel.Selected))
	for _, a := range sel.Selected {
		fmt.Fprintf(w, "  - %s (%s)\n", a.ID, a.Section)
	}
	return sel
}

// generate runs the generator for a and records the outcome on it.
func (d *Driver) generate(ctx context.Context, log *zap.Logger, a *manifest.Asset) Result {
	w := d.out()
	log = log.With(zap.String("asset", a.ID), zap.String("section", a.Section))

	description := a.Description
	if description == "" {
		description = "N/A"
	}
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintf(w, "Asset: %s\n", a.ID)
	fmt.Fprintf(w, "Section: %s\n", a.Section)
	fmt.Fprintf(w, "Status: %s\n", a.EffectiveStatus())
	fmt.Fprintf(w, "Description: %s\n", description)
	rule(w)
	fmt.Fprintln(w)

	output, err := d.Generator.Generate(ctx, generator.Request{AssetID: a.ID, Section: a.Section})
	result := Result{Asset: a, Output: output, Err: err}

	// An interrupted run is not recorded on the asset.
	if ctx.Err() != nil {
		return result
	}

	if result.Succeeded() {
		a.MarkComplete(d.now())
		fmt.Fprintf(w, "\n[ OK ] Asset %s generated successfully\n", a.ID)
		log.Info("asset generated", zap.Duration("duration", output.Duration))
		return result
	}

	a.MarkFailed(d.now())
	switch {
	case errors.Is(err, generator.ErrNotFound):
		fmt.Fprintf(w, "[FAIL] %v\n", err)
		fmt.Fprintln(w, "       Ensure Blender is installed and on PATH, or set generator.binary in the config.")
	case err != nil:
		fmt.Fprintf(w, "[FAIL] %v\n", err)
	default:
		fmt.Fprintf(w, "[FAIL] Generator exited with code %d\n", output.ExitCode)
	}
	fmt.Fprintf(w, "\n[FAIL] Asset %s generation failed\n", a.ID)

	fields := []zap.Field{zap.Error(err)}
	if output != nil {
		fields = append(fields,
			zap.Int("exit_code", output.ExitCode),
			zap.String("command", generator.CommandLine(output.Command)),
			zap.String("stderr", tail(output.Stderr, stderrLimit)),
		)
	}
	log.Error("asset generation failed", fields...)
	return result
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func banner(w io.Writer, title string) {
	rule(w)
	fmt.Fprintln(w, title)
	rule(w)
}

// tail returns at most n trailing bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
