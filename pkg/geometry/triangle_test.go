package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	if math.Abs(tri.Area()-6) > 1e-10 {
		t.Errorf("Area failed: expected 6, got %v", tri.Area())
	}
}

func TestTriangleDerivedNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	if tri.Normal != NewVector3(0, 0, 1) {
		t.Errorf("expected derived normal (0,0,1), got %v", tri.Normal)
	}
}

func TestTriangleTransform(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))
	moved := tri.Transform(func(v Vector3) Vector3 { return v.Add(NewVector3(0, 0, 5)) })

	if moved.V1.Z != 5 || moved.V3.Z != 5 {
		t.Errorf("Transform failed: got %+v", moved)
	}
	if math.Abs(moved.Area()-tri.Area()) > 1e-10 {
		t.Errorf("translation should preserve area")
	}
}
