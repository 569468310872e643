package soft

import (
	"math"
	"testing"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestOrbitClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.Orbit(0, 1e6)
	assert.InDelta(t, maxPitch, c.Pitch, 1e-9)
	c.Orbit(0, -1e7)
	assert.InDelta(t, -maxPitch, c.Pitch, 1e-9)
}

func TestZoomIsSymmetricAndClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.Zoom(float64(math.Log(2)))
	assert.InDelta(t, 3.0, c.Distance, 1e-9)
	c.Zoom(float64(math.Log(0.5)))
	assert.InDelta(t, 6.0, c.Distance, 1e-9)

	c.Zoom(100)
	assert.Equal(t, minDistance, c.Distance)
	c.Zoom(-100)
	assert.Equal(t, maxDistance, c.Distance)
}

func TestPanMovesTargetInViewPlane(t *testing.T) {
	c := NewOrbitCamera()
	eyeToTarget := c.Target.Sub(c.Eye())

	c.Pan(100, 0)
	assert.NotEqual(t, geometry.Vector3{}, c.Target)
	assert.InDelta(t, 0.0, c.Target.Dot(eyeToTarget.Normalize()), 1e-9)
}

func TestProjectTargetToCenter(t *testing.T) {
	c := NewOrbitCamera()
	x, y, z, ok := c.Project(c.Target, 800, 600)
	assert.True(t, ok)
	assert.InDelta(t, 400.0, x, 1e-6)
	assert.InDelta(t, 300.0, y, 1e-6)
	assert.InDelta(t, c.Distance, z, 1e-9)

	_, _, _, ok = c.Project(c.Eye().Mul(2), 800, 600)
	assert.False(t, ok, "points behind the camera are not projected")
}
