package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/branding"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/config"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootFlag      string
	logLevelFlag  string
	logFormatFlag string

	// settings is populated by the root PersistentPreRunE.
	settings *config.Settings
)

// errSilentExit signals a failure that has already been reported to the
// user. Execute returns it without printing anything further.
var errSilentExit = errors.New("exit status 1")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` drives the asset pipeline for the cinematic site: it generates the
3D assets planned in the asset list through a headless Blender script, tracks
their status, and validates the metadata written for each generated model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version info needs no project.
		if cmd.Name() == "version" {
			return nil
		}
		return loadSettings(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: $"+branding.EnvVar("ROOT")+", the git work tree, or the current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console, json)")
}

// loadSettings resolves the project root, reads the configuration layers and
// initializes the logger. Flags override every config layer.
func loadSettings(cmd *cobra.Command) error {
	root, err := config.ResolveRoot(rootFlag)
	if err != nil {
		return err
	}
	s, err := config.Load(root)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		s.Log.Level = logLevelFlag
	}
	if cmd.Flags().Changed("log-format") {
		s.Log.Format = logFormatFlag
	}
	if err := logger.Init(s.Log.Level, s.Log.Format); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	settings = s
	logger.L().Debug("settings loaded",
		zap.String("root", s.Root),
		zap.String("config_file", s.File),
		zap.String("runtime", s.Generator.Runtime),
	)
	return nil
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr unless they were already reported.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errSilentExit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
