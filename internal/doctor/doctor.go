// Package doctor runs health checks on a project: its asset layout, the
// generator toolchain and the Blender version.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/config"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/generator"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/manifest"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/metadata"
)

// Level grades a single finding.
type Level int

const (
	LevelOK Level = iota
	LevelInfo
	LevelWarn
	LevelMiss
	LevelFail
)

// Tag returns the fixed-width marker printed in front of a finding.
func (l Level) Tag() string {
	switch l {
	case LevelOK:
		return "[ OK ]"
	case LevelInfo:
		return "[INFO]"
	case LevelWarn:
		return "[WARN]"
	case LevelMiss:
		return "[MISS]"
	default:
		return "[FAIL]"
	}
}

// Finding is one line of doctor output.
type Finding struct {
	Level   Level
	Message string
}

// Section groups the findings of one check.
type Section struct {
	Title    string
	Findings []Finding
}

func (s *Section) add(l Level, format string, args ...any) {
	s.Findings = append(s.Findings, Finding{Level: l, Message: fmt.Sprintf(format, args...)})
}

// Report is the result of a doctor run.
type Report struct {
	Sections []*Section
}

// Healthy reports whether no finding is MISS or FAIL.
func (r *Report) Healthy() bool {
	for _, s := range r.Sections {
		for _, f := range s.Findings {
			if f.Level >= LevelMiss {
				return false
			}
		}
	}
	return true
}

// Write prints the report.
func (r *Report) Write(w io.Writer) {
	for i, s := range r.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", s.Title)
		for _, f := range s.Findings {
			fmt.Fprintf(w, "  %s %s\n", f.Level.Tag(), f.Message)
		}
	}
}

// Checker runs the checks for one project.
type Checker struct {
	Settings *config.Settings
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// VersionOutput returns the output of `<binary> --version`.
	VersionOutput func(ctx context.Context, binary string) (string, error)
}

func (c *Checker) lookPath(file string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(file)
	}
	return exec.LookPath(file)
}

func (c *Checker) versionOutput(ctx context.Context, binary string) (string, error) {
	if c.VersionOutput != nil {
		return c.VersionOutput(ctx, binary)
	}
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", binary, err)
	}
	return string(out), nil
}

// Run executes every check.
func (c *Checker) Run(ctx context.Context) *Report {
	return &Report{Sections: []*Section{
		c.checkLayout(),
		c.checkToolchain(ctx),
	}}
}

func (c *Checker) checkLayout() *Section {
	s := &Section{Title: "Project layout"}
	cfg := c.Settings
	s.add(LevelInfo, "root: %s", cfg.Root)

	if info, err := os.Stat(cfg.AssetsRoot()); err != nil || !info.IsDir() {
		s.add(LevelMiss, "assets directory %s not found", cfg.AssetsRoot())
	} else {
		s.add(LevelOK, "assets directory %s", cfg.AssetsRoot())
	}

	path := cfg.ManifestPath()
	if _, err := os.Stat(path); err != nil {
		s.add(LevelMiss, "asset list %s not found", path)
	} else if doc, err := manifest.Load(path); err != nil {
		s.add(LevelFail, "asset list %s: %v", path, err)
	} else {
		counts := doc.Counts()
		s.add(LevelOK, "asset list %s: %d asset(s), %d planned, %d complete, %d failed",
			path, len(doc.Assets), counts[manifest.StatusPlanned], counts[manifest.StatusComplete], counts[manifest.StatusFailed])
	}

	path = cfg.SchemaPath()
	if _, err := os.Stat(path); err != nil {
		s.add(LevelMiss, "metadata schema %s not found", path)
	} else if _, err := metadata.LoadSchema(path); err != nil {
		s.add(LevelFail, "metadata schema: %v", err)
	} else {
		s.add(LevelOK, "metadata schema %s", path)
	}

	path = cfg.GeneratorScript()
	if _, err := os.Stat(path); err != nil {
		s.add(LevelMiss, "generator script %s not found", path)
	} else {
		s.add(LevelOK, "generator script %s", path)
	}
	return s
}

func (c *Checker) checkToolchain(ctx context.Context) *Section {
	s := &Section{Title: "Toolchain"}
	cfg := c.Settings

	if path, err := c.lookPath("git"); err != nil {
		s.add(LevelWarn, "git not found (project root falls back to the working directory)")
	} else {
		s.add(LevelOK, "git found at %s", path)
	}

	runtime := cfg.Generator.Runtime
	switch runtime {
	case generator.RuntimeBlender, "":
	case generator.RuntimeExec:
		s.add(LevelInfo, "runtime %q runs the generator script directly, Blender not required", runtime)
		return s
	default:
		s.add(LevelFail, "unknown generator runtime %q", runtime)
		return s
	}

	binary := cfg.GeneratorBinary()
	path, err := c.lookPath(binary)
	if err != nil {
		s.add(LevelMiss, "%s not found", binary)
		return s
	}
	s.add(LevelOK, "%s found at %s", binary, path)

	out, err := c.versionOutput(ctx, path)
	if err != nil {
		s.add(LevelWarn, "could not determine Blender version: %v", err)
		return s
	}
	found, err := ParseBlenderVersion(out)
	if err != nil {
		s.add(LevelWarn, "%v", err)
		return s
	}

	ok, err := MeetsMinimum(found, cfg.Generator.MinVersion)
	switch {
	case err != nil:
		s.add(LevelWarn, "checking Blender version: %v", err)
	case !ok:
		s.add(LevelFail, "Blender %s is older than the required %s", found, cfg.Generator.MinVersion)
	default:
		s.add(LevelOK, "Blender %s (>= %s)", found, cfg.Generator.MinVersion)
	}
	return s
}

var blenderVersionRe = regexp.MustCompile(`Blender (\d+\.\d+(?:\.\d+)?)`)

// ParseBlenderVersion extracts the version from `blender --version` output.
func ParseBlenderVersion(output string) (string, error) {
	m := blenderVersionRe.FindStringSubmatch(output)
	if m == nil {
		line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
		return "", fmt.Errorf("unrecognized version output %q", line)
	}
	return m[1], nil
}

// MeetsMinimum reports whether version satisfies ">= minimum".
func MeetsMinimum(version, minimum string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(">= " + strings.TrimPrefix(minimum, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	return c.Check(v), nil
}
