package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotFound is wrapped by errors caused by a missing generator executable.
var ErrNotFound = errors.New("generator executable not found")

// Supported runtime identifiers.
const (
	RuntimeBlender = "blender"
	RuntimeExec    = "exec"
)

// Generator produces a single asset.
type Generator interface {
	// Generate runs the generator for one asset and blocks until it exits.
	// A non-zero exit is reported through Output.ExitCode with a nil error;
	// the error return is for failures to run the process at all.
	Generate(ctx context.Context, req Request) (*Output, error)
}

// Request identifies the asset to generate.
type Request struct {
	AssetID string
	Section string
}

// Args returns the positional arguments every generator receives.
func (r Request) Args() []string {
	return []string{"--id", r.AssetID, "--section", r.Section}
}

// Output captures the result of a generator run.
type Output struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Succeeded reports whether the generator exited zero.
func (o *Output) Succeeded() bool {
	return o != nil && o.ExitCode == 0
}

// Config carries everything Dispatch needs to build a Generator.
type Config struct {
	Runtime string
	// Binary is the Blender executable (blender runtime only).
	Binary string
	// Script is the generator script (blender runtime) or executable (exec runtime).
	Script string
	// Dir is the working directory for the process. Empty means the current one.
	Dir string
	// Env is added to the inherited environment.
	Env map[string]string

	Stdout io.Writer
	Stderr io.Writer
}

// Dispatch returns the Generator for cfg.Runtime. An unknown runtime yields
// a Generator whose every call fails.
func Dispatch(cfg Config) Generator {
	switch cfg.Runtime {
	case RuntimeBlender, "":
		return &BlenderGenerator{
			Binary: cfg.Binary,
			Script: cfg.Script,
			Runner: Runner{Dir: cfg.Dir, Env: cfg.Env, Stdout: cfg.Stdout, Stderr: cfg.Stderr},
		}
	case RuntimeExec:
		return &ExecGenerator{
			Path:   cfg.Script,
			Runner: Runner{Dir: cfg.Dir, Env: cfg.Env, Stdout: cfg.Stdout, Stderr: cfg.Stderr},
		}
	default:
		return &unknownGenerator{name: cfg.Runtime}
	}
}

// Describe returns a one-line description of g for plan output.
func Describe(g Generator) string {
	switch v := g.(type) {
	case *BlenderGenerator:
		return fmt.Sprintf("%s (blender: %s)", v.Script, v.binary())
	case *ExecGenerator:
		return fmt.Sprintf("%s (exec)", v.Path)
	default:
		return fmt.Sprintf("%T", g)
	}
}

// unknownGenerator is returned when the runtime identifier is not recognized.
type unknownGenerator struct {
	name string
}

func (u *unknownGenerator) Generate(_ context.Context, _ Request) (*Output, error) {
	return nil, fmt.Errorf("unknown runtime %q: supported runtimes are %q and %q", u.name, RuntimeBlender, RuntimeExec)
}
