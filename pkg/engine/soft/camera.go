package soft

import (
	"math"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
)

const (
	orbitSpeed  = 0.005 // radians per pixel
	panSpeed    = 0.0015
	minDistance = 0.5
	maxDistance = 50.0
	maxPitch    = math.Pi/2 - 0.05
)

// OrbitCamera circles a target point at a distance.
type OrbitCamera struct {
	Target   geometry.Vector3
	Distance float64
	Yaw      float64
	Pitch    float64
	FOV      float64 // vertical field of view in radians
}

// NewOrbitCamera returns a camera in the default pose.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{}
	c.Reset()
	return c
}

// Reset restores the default pose
func (c *OrbitCamera) Reset() {
	c.Target = geometry.Vector3{}
	c.Distance = 6
	c.Yaw = math.Pi / 4
	c.Pitch = 0.610865238 // ~35 degrees
	c.FOV = math.Pi / 4
}

// Orbit rotates around the target by a pixel delta.
func (c *OrbitCamera) Orbit(dx, dy float64) {
	c.Yaw += dx * orbitSpeed
	c.Pitch += dy * orbitSpeed
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))
	c.Yaw = math.Remainder(c.Yaw, 2*math.Pi)
}

// Pan moves the target in the view plane by a pixel delta. The target
// follows the fingers, so the scene appears to move with the drag.
func (c *OrbitCamera) Pan(dx, dy float64) {
	_, right, up := c.basis()
	k := c.Distance * panSpeed
	c.Target = c.Target.Add(right.Mul(-dx * k)).Add(up.Mul(dy * k))
}

// Zoom changes the distance on a log scale: positive deltas move closer.
func (c *OrbitCamera) Zoom(delta float64) {
	c.Distance *= math.Exp(-delta)
	c.Distance = math.Max(minDistance, math.Min(maxDistance, c.Distance))
}

// Eye returns the camera position
func (c *OrbitCamera) Eye() geometry.Vector3 {
	cp := math.Cos(c.Pitch)
	offset := geometry.NewVector3(cp*math.Sin(c.Yaw), math.Sin(c.Pitch), cp*math.Cos(c.Yaw))
	return c.Target.Add(offset.Mul(c.Distance))
}

func (c *OrbitCamera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Eye()).Normalize()
	right = forward.Cross(geometry.NewVector3(0, 1, 0)).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a scene point to screen coordinates and view depth. The
// boolean is false for points behind the near plane.
func (c *OrbitCamera) Project(p geometry.Vector3, width, height float64) (x, y, z float64, ok bool) {
	forward, right, up := c.basis()
	rel := p.Sub(c.Eye())
	z = rel.Dot(forward)
	if z <= 0.01 {
		return 0, 0, z, false
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)
	x = (rel.Dot(right)/(z*fovScale*aspect))*(width/2) + width/2
	y = (-rel.Dot(up)/(z*fovScale))*(height/2) + height/2
	return x, y, z, true
}
