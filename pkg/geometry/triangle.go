package geometry

// Triangle is one facet of a mesh.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a triangle. A zero normal is replaced by the
// winding-order normal.
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	t := Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
	if normal == (Vector3{}) {
		t.Normal = t.CalculateNormal()
	}
	return t
}

// CalculateNormal returns the unit normal from the vertex winding.
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2
}

// Transform returns the triangle with every vertex mapped through fn and
// the normal recomputed.
func (t Triangle) Transform(fn func(Vector3) Vector3) Triangle {
	out := Triangle{V1: fn(t.V1), V2: fn(t.V2), V3: fn(t.V3)}
	out.Normal = out.CalculateNormal()
	return out
}
