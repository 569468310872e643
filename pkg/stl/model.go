package stl

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
)

// ErrEmptyMesh is reported by Check for a mesh without facets.
var ErrEmptyMesh = errors.New("mesh has no facets")

// Model is a parsed STL mesh
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// Add appends facets.
func (m *Model) Add(tris ...geometry.Triangle) {
	m.Triangles = append(m.Triangles, tris...)
}

// TriangleCount returns the number of facets
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox spans every vertex. It is empty for a mesh without facets.
func (m *Model) BoundingBox() geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	for _, tri := range m.Triangles {
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			box.Extend(v)
		}
	}
	return box
}

// Check reports whether the mesh can be placed in a scene: it needs at
// least one facet and every vertex must be finite.
func (m *Model) Check() error {
	if len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}
	for i, tri := range m.Triangles {
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
				return fmt.Errorf("facet %d: non-finite vertex %v", i, v)
			}
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
