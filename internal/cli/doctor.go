package cli

import (
	"fmt"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/branding"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/doctor"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the asset pipeline",
	Long: `Run diagnostic checks on the project layout and the generator toolchain.

Checks the assets directory, the asset list, the metadata schema, the generator
script, and that a Blender new enough to run the generator is on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := &doctor.Checker{Settings: settings}
		report := checker.Run(cmd.Context())

		out := cmd.OutOrStdout()
		report.Write(out)
		if !report.Healthy() {
			fmt.Fprintf(out, "\nSome checks failed. Run `%s config show` to review the settings in use.\n", branding.CLIName())
			return errSilentExit
		}
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	},
}
