package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/philipparndt/cylinderworks/assets"
	"github.com/philipparndt/cylinderworks/internal/view"
	"github.com/philipparndt/cylinderworks/pkg/analysis"
	"github.com/philipparndt/cylinderworks/pkg/assembly"
	"github.com/philipparndt/cylinderworks/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [scene]",
	Short: "Display information about a scene assembly",
	Long: `Show part, triangle and bounding box statistics for a scene assembly.
Without an argument the configured scene is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func sceneSource(args []string) (fs.FS, string) {
	if len(args) == 1 {
		return os.DirFS(filepath.Dir(args[0])), filepath.Base(args[0])
	}
	ctx := view.AssetContext{FS: assets.FS, Prefix: cfg.Assets.Prefix}
	if cfg.Assets.Dir != "" {
		ctx.FS = os.DirFS(cfg.Assets.Dir)
	}
	return ctx.Assets(), ctx.LookupKeyForAsset(cfg.Assets.Scene)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fsys, key := sceneSource(args)
	a, err := assembly.Load(fsys, key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Scene Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Name: %s\n", a.Name)
	fmt.Fprintf(out, "File: %s\n\n", key)

	fmt.Fprintln(out, "Parts:")
	for _, p := range a.Parts {
		fmt.Fprintf(out, "  %-12s %-13s %6d triangles  offset %s\n",
			p.Name, p.Motion, triangles(p.Model), analysis.FormatVector(p.Offset))
	}
	fmt.Fprintln(out)

	s := a.Stats
	fmt.Fprintln(out, "Totals:")
	fmt.Fprintf(out, "  Meshes: %d\n", s.Meshes)
	fmt.Fprintf(out, "  Triangles: %d\n", s.TriangleCount)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", s.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(s.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(s.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(s.BoundingBox.Center()))
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", s.BoundingBox.Diagonal())

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", s.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", s.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", s.AvgEdgeLength)
	return nil
}

func triangles(m *stl.Model) int {
	if m == nil {
		return 0
	}
	return m.TriangleCount()
}
