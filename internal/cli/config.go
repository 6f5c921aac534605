package cli

import (
	"fmt"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/branding"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect project settings",
	Long: `Show the effective settings for the current project.

Settings are layered: built-in defaults, then ` + branding.ConfigFile() + ` at the
project root, then .env, then ` + branding.EnvPrefix() + `_* environment variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("marshaling settings: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Example: `  ` + branding.CLIName() + ` config get generator.runtime
  ` + branding.CLIName() + ` config get manifest`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !settings.IsSet(key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), settings.Get(key))
		return nil
	},
}
