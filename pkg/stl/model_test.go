package stl

import (
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelCheck(t *testing.T) {
	m := NewModel("empty")
	assert.ErrorIs(t, m.Check(), ErrEmptyMesh)
	assert.True(t, m.BoundingBox().Empty())

	m.Add(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 0, 0), geometry.NewVector3(0, 3, 1)))
	require.NoError(t, m.Check())
	box := m.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, 0), box.Min)
	assert.Equal(t, geometry.NewVector3(2, 3, 1), box.Max)

	m.Add(geometry.NewTriangle(geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(math.Inf(1), 0, 0), geometry.NewVector3(0, 1, 0)))
	assert.ErrorContains(t, m.Check(), "facet 1")
}

func TestParsedNaNFailsCheck(t *testing.T) {
	src := strings.Replace(asciiCube, "vertex 1 0 0", "vertex NaN 0 0", 1)
	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.ErrorContains(t, m.Check(), "non-finite")
}
