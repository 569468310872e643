package soft

import (
	"image"
	"image/color"
	"math"
)

// frameBuffer is a color target with a depth buffer.
type frameBuffer struct {
	img   *image.RGBA
	depth []float64
}

func newFrameBuffer(width, height int) *frameBuffer {
	return &frameBuffer{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
}

// reset clears color and depth, reallocating when the size changed.
func (fb *frameBuffer) reset(width, height int, bg color.RGBA) {
	if b := fb.img.Bounds(); b.Dx() != width || b.Dy() != height {
		*fb = *newFrameBuffer(width, height)
	}
	pix := fb.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	for i := range fb.depth {
		fb.depth[i] = math.Inf(1)
	}
}

type vertex struct{ x, y, z float64 }

// fillTriangle fills a triangle with depth testing using a scanline
// walk over the y-sorted vertices.
func (fb *frameBuffer) fillTriangle(a, b, c vertex, col color.RGBA) {
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}

	bounds := fb.img.Bounds()
	width := bounds.Dx()
	yStart := int(math.Max(0, math.Ceil(a.y)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), c.y))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// long edge a-c always spans the row
		xl, zl := lerpEdge(a, c, fy)
		var xr, zr float64
		if fy < b.y {
			xr, zr = lerpEdge(a, b, fy)
		} else {
			xr, zr = lerpEdge(b, c, fy)
		}
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}

		xs := int(math.Max(0, math.Ceil(xl)))
		xe := int(math.Min(float64(bounds.Max.X-1), xr))
		for x := xs; x <= xe; x++ {
			t := 0.0
			if xr != xl {
				t = (float64(x) - xl) / (xr - xl)
			}
			z := zl + t*(zr-zl)
			idx := y*width + x
			if z < fb.depth[idx] {
				fb.depth[idx] = z
				fb.img.SetRGBA(x, y, col)
			}
		}
	}
}

func lerpEdge(p, q vertex, y float64) (x, z float64) {
	if q.y == p.y {
		return p.x, p.z
	}
	t := (y - p.y) / (q.y - p.y)
	return p.x + t*(q.x-p.x), p.z + t*(q.z-p.z)
}

// drawLine draws a line with Bresenham's algorithm, ignoring depth.
func (fb *frameBuffer) drawLine(x1, y1, x2, y2 int, col color.RGBA) {
	bounds := fb.img.Bounds()
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			fb.img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// shade applies simple diffuse lighting to a base color.
func shade(base color.RGBA, intensity float64) color.RGBA {
	intensity = math.Max(0, math.Min(1, intensity))
	return color.RGBA{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: 0xff,
	}
}
