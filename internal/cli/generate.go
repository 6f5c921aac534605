package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/branding"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/config"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/generator"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	generateConfig  string
	generateScript  string
	generateRuntime string
	generateID      string
	generateForce   bool
	generateDryRun  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the planned assets in the asset list",
	Long: `Generate every asset whose status is "planned" (or every asset with --force)
by running the generator once per asset, in asset list order.

Each asset is marked complete or failed as its generator exits. The asset
list is rewritten once the whole batch has been attempted; an interrupted run
leaves it untouched. The command exits non-zero if any asset failed.`,
	Example: `  ` + branding.CLIName() + ` generate --dry-run
  ` + branding.CLIName() + ` generate --id station-home --force
  ` + branding.CLIName() + ` generate --runtime exec --generator ./bin/fake-generator`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "Asset list path (default: "+config.DefaultManifest+")")
	generateCmd.Flags().StringVar(&generateScript, "generator", "", "Generator script or executable (default: "+config.DefaultGeneratorScript+")")
	generateCmd.Flags().StringVar(&generateRuntime, "runtime", "", "Generator runtime: blender or exec (default: "+config.DefaultRuntime+")")
	generateCmd.Flags().StringVar(&generateID, "id", "", "Generate only the asset with this id")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Regenerate assets regardless of status")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Show what would be generated without running anything")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	manifestPath := settings.ManifestPath()
	if generateConfig != "" {
		manifestPath = settings.Resolve(generateConfig)
	}
	script := settings.GeneratorScript()
	if generateScript != "" {
		script = settings.Resolve(generateScript)
	}
	runtime := settings.Generator.Runtime
	if generateRuntime != "" {
		runtime = generateRuntime
	}

	switch runtime {
	case generator.RuntimeBlender, generator.RuntimeExec:
	default:
		return fmt.Errorf("unknown runtime %q (want %s or %s)", runtime, generator.RuntimeBlender, generator.RuntimeExec)
	}
	if _, err := os.Stat(manifestPath); err != nil {
		return fmt.Errorf("asset list not found: %s", manifestPath)
	}
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("generator not found: %s", script)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := generator.Dispatch(generator.Config{
		Runtime: runtime,
		Binary:  settings.GeneratorBinary(),
		Script:  script,
		Dir:     settings.Root,
		Env: map[string]string{
			branding.EnvVar("PROJECT_ROOT"): settings.Root,
			branding.EnvVar("ASSETS_DIR"):   settings.AssetsRoot(),
		},
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})

	driver := &pipeline.Driver{
		Generator: gen,
		Out:       cmd.OutOrStdout(),
	}
	summary, err := driver.Run(ctx, manifestPath, pipeline.Options{
		ID:     generateID,
		Force:  generateForce,
		DryRun: generateDryRun,
	})
	if err != nil {
		return err
	}
	if !summary.OK() {
		return errSilentExit
	}
	return nil
}
