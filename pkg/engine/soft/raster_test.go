package soft

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func TestFillTriangleDepth(t *testing.T) {
	fb := newFrameBuffer(20, 20)
	fb.reset(20, 20, background)

	fb.fillTriangle(vertex{0, 0, 5}, vertex{19, 0, 5}, vertex{0, 19, 5}, red)
	fb.fillTriangle(vertex{0, 0, 9}, vertex{19, 0, 9}, vertex{0, 19, 9}, blue)
	assert.Equal(t, red, fb.img.RGBAAt(2, 2), "farther triangle must not overwrite")

	fb.fillTriangle(vertex{0, 0, 1}, vertex{19, 0, 1}, vertex{0, 19, 1}, blue)
	assert.Equal(t, blue, fb.img.RGBAAt(2, 2))
	assert.Equal(t, background, fb.img.RGBAAt(18, 18))
}

func TestFillTriangleClipsToBounds(t *testing.T) {
	fb := newFrameBuffer(10, 10)
	fb.reset(10, 10, background)

	assert.NotPanics(t, func() {
		fb.fillTriangle(vertex{-50, -50, 1}, vertex{80, -10, 1}, vertex{5, 90, 1}, red)
	})
	assert.Equal(t, red, fb.img.RGBAAt(5, 5))
}

func TestResetReallocates(t *testing.T) {
	fb := newFrameBuffer(4, 4)
	fb.reset(8, 2, background)
	assert.Equal(t, 8, fb.img.Bounds().Dx())
	assert.Len(t, fb.depth, 16)
}

func TestDrawLine(t *testing.T) {
	fb := newFrameBuffer(10, 10)
	fb.reset(10, 10, background)
	fb.drawLine(-5, 5, 20, 5, red)
	for x := 0; x < 10; x++ {
		assert.Equal(t, red, fb.img.RGBAAt(x, 5))
	}
}

func TestShade(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 100, G: 50, A: 255}, shade(color.RGBA{R: 200, G: 100, A: 255}, 0.5))
	assert.Equal(t, color.RGBA{R: 200, A: 255}, shade(color.RGBA{R: 200, A: 255}, 3))
}
