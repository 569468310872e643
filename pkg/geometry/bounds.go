package geometry

import "math"

// BoundingBox is an axis-aligned box. The zero value is not empty; use
// NewBoundingBox for a box that can be grown with Extend.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox returns an inverted box that any Extend call will fix up.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: Vector3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// Extend grows the box to include p
func (b *BoundingBox) Extend(p Vector3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union grows the box to include o.
func (b *BoundingBox) Union(o BoundingBox) {
	if o.Empty() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Empty reports whether nothing has been added to the box.
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the box dimensions
func (b BoundingBox) Size() Vector3 {
	if b.Empty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box
func (b BoundingBox) Center() Vector3 {
	if b.Empty() {
		return Vector3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}
