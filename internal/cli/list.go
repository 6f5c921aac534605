package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	listStatusFilter string
	listJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets in the asset list",
	Long:  `List every asset in the asset list with its section and status.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatusFilter, "status", "", "Filter by status (planned, complete, failed)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents an asset for display.
type listEntry struct {
	ID          string `json:"id"`
	Section     string `json:"section"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
	FailedAt    string `json:"failed_at,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	doc, err := manifest.Load(settings.ManifestPath())
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, a := range doc.Assets {
		status := a.EffectiveStatus()
		if listStatusFilter != "" && string(status) != listStatusFilter {
			continue
		}
		e := listEntry{ID: a.ID, Section: a.Section, Status: string(status)}
		if a.CompletedAt != nil {
			e.CompletedAt = a.CompletedAt.Format("2006-01-02 15:04")
		}
		if a.FailedAt != nil {
			e.FailedAt = a.FailedAt.Format("2006-01-02 15:04")
		}
		entries = append(entries, e)
	}

	out := cmd.OutOrStdout()
	if listJSON {
		if entries == nil {
			entries = []listEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No assets found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSECTION\tSTATUS\tCOMPLETED\tFAILED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Section, e.Status, dash(e.CompletedAt), dash(e.FailedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := doc.Counts()
	fmt.Fprintf(out, "\n%d asset(s): %d planned, %d complete, %d failed\n",
		len(doc.Assets), counts[manifest.StatusPlanned], counts[manifest.StatusComplete], counts[manifest.StatusFailed])
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
