package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/glb"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/metadata"
	"github.com/spf13/cobra"
)

var inspectMetadata string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.glb>",
	Short: "Show geometry statistics for a generated model",
	Long: `Open a generated GLB (or glTF) file and print its scene, mesh, material,
vertex and triangle counts.

With --metadata, the triangle count is compared to the polycount recorded in
the asset's metadata document. Both paths are relative to the current
directory, as with validate.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectMetadata, "metadata", "", "Metadata document to compare the polycount against")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	stats, err := glb.Inspect(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "File:\t%s\n", path)
	if stats.Generator != "" {
		fmt.Fprintf(w, "Generator:\t%s\n", stats.Generator)
	}
	fmt.Fprintf(w, "Scenes:\t%d\n", stats.Scenes)
	fmt.Fprintf(w, "Nodes:\t%d\n", stats.Nodes)
	fmt.Fprintf(w, "Meshes:\t%d\n", stats.Meshes)
	fmt.Fprintf(w, "Primitives:\t%d\n", stats.Primitives)
	fmt.Fprintf(w, "Materials:\t%d\n", stats.Materials)
	fmt.Fprintf(w, "Vertices:\t%d\n", stats.Vertices)
	fmt.Fprintf(w, "Triangles:\t%d\n", stats.Triangles)
	if err := w.Flush(); err != nil {
		return err
	}

	if inspectMetadata == "" {
		return nil
	}
	doc, err := metadata.LoadDocument(inspectMetadata)
	if err != nil {
		return err
	}
	polycount, ok := doc.Polycount()
	switch {
	case !ok:
		fmt.Fprintln(out, "\n[WARN] metadata has no integer metadata.polycount")
	case polycount != int64(stats.Triangles):
		fmt.Fprintf(out, "\n[WARN] polycount mismatch: metadata=%d, model=%d\n", polycount, stats.Triangles)
	default:
		fmt.Fprintf(out, "\n[ OK ] polycount matches metadata (%d)\n", polycount)
	}
	return nil
}
