package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
	"github.com/philipparndt/cylinderworks/pkg/stl"
)

// MeshStats summarizes one or more meshes
type MeshStats struct {
	Meshes        int
	TriangleCount int
	SurfaceArea   float64
	BoundingBox   geometry.BoundingBox
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// Analyze accumulates statistics over every given mesh. Nil models are
// skipped.
func Analyze(models ...*stl.Model) MeshStats {
	stats := MeshStats{BoundingBox: geometry.NewBoundingBox()}

	minLength := math.MaxFloat64
	total := 0.0
	edges := 0
	for _, model := range models {
		if model == nil {
			continue
		}
		stats.Meshes++
		stats.TriangleCount += model.TriangleCount()
		stats.BoundingBox.Union(model.BoundingBox())

		for _, tri := range model.Triangles {
			stats.SurfaceArea += tri.Area()
			for _, l := range [3]float64{tri.V1.Distance(tri.V2), tri.V2.Distance(tri.V3), tri.V3.Distance(tri.V1)} {
				minLength = math.Min(minLength, l)
				stats.MaxEdgeLength = math.Max(stats.MaxEdgeLength, l)
				total += l
				edges++
			}
		}
	}

	if edges > 0 {
		stats.MinEdgeLength = minLength
		stats.AvgEdgeLength = total / float64(edges)
	}
	return stats
}

// FormatVector formats a vector for display
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
