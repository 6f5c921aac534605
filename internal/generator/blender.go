package generator

import (
	"context"
	"fmt"
	"os"
)

// BlenderGenerator runs a generator script inside a headless Blender:
//
//	blender -b -P <script> -- --id <id> --section <section>
type BlenderGenerator struct {
	// Binary is the Blender executable; "blender" on PATH when empty.
	Binary string
	Script string
	Runner Runner
}

func (b *BlenderGenerator) binary() string {
	if b.Binary == "" {
		return "blender"
	}
	return b.Binary
}

// Generate implements Generator.
func (b *BlenderGenerator) Generate(ctx context.Context, req Request) (*Output, error) {
	if _, err := os.Stat(b.Script); err != nil {
		return nil, fmt.Errorf("generator script not found at %s: %w", b.Script, err)
	}

	args := append([]string{"-b", "-P", b.Script, "--"}, req.Args()...)
	return b.Runner.Run(ctx, b.binary(), args)
}
