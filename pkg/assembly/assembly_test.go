package assembly

import (
	"image/color"
	"math"
	"testing"
	"testing/fstest"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
	"github.com/philipparndt/cylinderworks/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wedge = `solid wedge
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid wedge
`

func assets() fstest.MapFS {
	return fstest.MapFS{
		"assets/engine/assembly.json": {Data: []byte(`{
  "name": "single",
  "parts": [
    {"name": "block", "mesh": "meshes/wedge.stl", "color": "#ff8000"},
    {"name": "piston", "mesh": "meshes/wedge.stl", "motion": "reciprocating", "stroke": 2, "offset": [0, 3, 0]}
  ]
}`)},
		"assets/engine/meshes/wedge.stl": {Data: []byte(wedge)},
	}
}

func TestLoad(t *testing.T) {
	a, err := Load(assets(), "assets/engine/assembly.json")
	require.NoError(t, err)

	assert.Equal(t, "single", a.Name)
	require.Len(t, a.Parts, 2)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, a.Parts[0].Color)
	assert.Equal(t, DefaultColor, a.Parts[1].Color)
	assert.Equal(t, Static, a.Parts[0].Motion)
	assert.Equal(t, 1.0, a.Parts[1].Scale)
	assert.Equal(t, 2, a.Stats.TriangleCount)
}

func TestLoadMissingMesh(t *testing.T) {
	fsys := assets()
	delete(fsys, "assets/engine/meshes/wedge.stl")

	_, err := Load(fsys, "assets/engine/assembly.json")
	assert.ErrorContains(t, err, `part "block"`)
}

func TestLoadEmptyMesh(t *testing.T) {
	fsys := assets()
	fsys["assets/engine/meshes/wedge.stl"] = &fstest.MapFile{Data: []byte("solid wedge\nendsolid wedge\n")}

	_, err := Load(fsys, "assets/engine/assembly.json")
	assert.ErrorContains(t, err, `part "block"`)
	assert.ErrorIs(t, err, stl.ErrEmptyMesh)
}

func TestFiles(t *testing.T) {
	want := []string{"assets/engine/assembly.json", "assets/engine/meshes/wedge.stl"}

	a, err := Load(assets(), "assets/engine/assembly.json")
	require.NoError(t, err)
	assert.Equal(t, want, a.Files)

	// the mesh need not exist to know the scene depends on it
	fsys := assets()
	delete(fsys, "assets/engine/meshes/wedge.stl")
	files, err := Files(fsys, "assets/engine/assembly.json")
	require.NoError(t, err)
	assert.Equal(t, want, files)

	_, err = Files(fsys, "assets/engine/none.json")
	assert.Error(t, err)
}

func TestDecodeValidation(t *testing.T) {
	_, err := Decode([]byte(`name: empty`))
	assert.ErrorIs(t, err, ErrNoParts)

	_, err = Decode([]byte("parts:\n  - name: a\n    mesh: a.stl\n    motion: wobble\n"))
	assert.ErrorContains(t, err, "unknown motion")

	_, err = Decode([]byte("parts:\n  - name: a\n"))
	assert.ErrorContains(t, err, "has no mesh")
}

func TestPartTransform(t *testing.T) {
	piston := Part{Scale: 1, Motion: Reciprocating, Stroke: 2, Offset: geometry.NewVector3(0, 3, 0)}
	top := piston.Transform(0)(geometry.Vector3{})
	bottom := piston.Transform(math.Pi)(geometry.Vector3{})
	assert.InDelta(t, 4.0, top.Y, 1e-9)
	assert.InDelta(t, 2.0, bottom.Y, 1e-9)

	crank := Part{Scale: 1, Motion: Rotating}
	v := crank.Transform(math.Pi / 2)(geometry.NewVector3(1, 0, 0))
	assert.InDelta(t, 0.0, v.X, 1e-9)
	assert.InDelta(t, 1.0, v.Y, 1e-9)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	_, err = ParseColor("#12")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
