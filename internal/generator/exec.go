package generator

import "context"

// ExecGenerator runs the generator directly as an executable:
//
//	<path> --id <id> --section <section>
type ExecGenerator struct {
	Path   string
	Runner Runner
}

// Generate implements Generator.
func (e *ExecGenerator) Generate(ctx context.Context, req Request) (*Output, error) {
	return e.Runner.Run(ctx, e.Path, req.Args())
}
