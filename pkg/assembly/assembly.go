// Package assembly loads the scene description asset: a document listing
// the parts of an engine assembly, the STL mesh for each part and how the
// part moves with the crankshaft.
package assembly

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/philipparndt/cylinderworks/pkg/analysis"
	"github.com/philipparndt/cylinderworks/pkg/geometry"
	"github.com/philipparndt/cylinderworks/pkg/stl"
	"gopkg.in/yaml.v3"
)

// Motion describes how a part follows the crank angle
type Motion string

const (
	Static        Motion = "static"
	Rotating      Motion = "rotating"
	Reciprocating Motion = "reciprocating"
)

// ErrNoParts is returned for a document without parts.
var ErrNoParts = errors.New("assembly has no parts")

// Document is the on-disk form. JSON documents decode as well since
// JSON is a subset of YAML.
type Document struct {
	Name  string    `yaml:"name"`
	Parts []PartDoc `yaml:"parts"`
}

// PartDoc is one part entry of a Document
type PartDoc struct {
	Name   string     `yaml:"name"`
	Mesh   string     `yaml:"mesh"`
	Color  string     `yaml:"color"`
	Offset [3]float64 `yaml:"offset"`
	Scale  float64    `yaml:"scale"`
	Motion Motion     `yaml:"motion"`
	Stroke float64    `yaml:"stroke"`
}

// Part is a loaded part ready for rendering
type Part struct {
	Name   string
	Model  *stl.Model
	Color  color.RGBA
	Offset geometry.Vector3
	Scale  float64
	Motion Motion
	Stroke float64
}

// Assembly is a loaded scene
type Assembly struct {
	Name  string
	Parts []Part
	Stats analysis.MeshStats
	// Files lists the document and every mesh it references, as paths
	// in the file system it was loaded from.
	Files []string
}

// Decode parses a document and validates it.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode assembly: %w", err)
	}
	if len(doc.Parts) == 0 {
		return nil, ErrNoParts
	}
	for i, p := range doc.Parts {
		if p.Name == "" {
			return nil, fmt.Errorf("part %d has no name", i)
		}
		if p.Mesh == "" {
			return nil, fmt.Errorf("part %q has no mesh", p.Name)
		}
		switch p.Motion {
		case "", Static, Rotating, Reciprocating:
		default:
			return nil, fmt.Errorf("part %q: unknown motion %q", p.Name, p.Motion)
		}
	}
	return &doc, nil
}

// Load reads the document under key from fsys and every mesh it
// references. Mesh paths are relative to the document.
func Load(fsys fs.FS, key string) (*Assembly, error) {
	data, err := fs.ReadFile(fsys, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read assembly: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	dir := path.Dir(key)
	a := &Assembly{Name: doc.Name, Parts: make([]Part, 0, len(doc.Parts)), Files: doc.files(key)}
	models := make([]*stl.Model, 0, len(doc.Parts))
	for _, pd := range doc.Parts {
		model, err := stl.ParseFS(fsys, path.Join(dir, pd.Mesh))
		if err == nil {
			err = model.Check()
		}
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", pd.Name, err)
		}
		col, err := ParseColor(pd.Color)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", pd.Name, err)
		}
		p := Part{
			Name:   pd.Name,
			Model:  model,
			Color:  col,
			Offset: geometry.NewVector3(pd.Offset[0], pd.Offset[1], pd.Offset[2]),
			Scale:  pd.Scale,
			Motion: pd.Motion,
			Stroke: pd.Stroke,
		}
		if p.Scale == 0 {
			p.Scale = 1
		}
		if p.Motion == "" {
			p.Motion = Static
		}
		a.Parts = append(a.Parts, p)
		models = append(models, model)
	}
	a.Stats = analysis.Analyze(models...)
	return a, nil
}

// Files returns the paths a scene under key depends on without loading
// its meshes. Only the document itself has to be readable.
func Files(fsys fs.FS, key string) ([]string, error) {
	data, err := fs.ReadFile(fsys, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read assembly: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return []string{key}, fmt.Errorf("%s: %w", key, err)
	}
	return doc.files(key), nil
}

func (d *Document) files(key string) []string {
	dir := path.Dir(key)
	out := []string{key}
	seen := map[string]bool{key: true}
	for _, p := range d.Parts {
		f := path.Join(dir, p.Mesh)
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// Transform returns the vertex transform for the part at the given crank
// angle in radians.
func (p Part) Transform(crank float64) func(geometry.Vector3) geometry.Vector3 {
	switch p.Motion {
	case Rotating:
		s, c := math.Sincos(crank)
		return func(v geometry.Vector3) geometry.Vector3 {
			v = v.Mul(p.Scale)
			v = geometry.Vector3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
			return v.Add(p.Offset)
		}
	case Reciprocating:
		lift := geometry.NewVector3(0, p.Stroke/2*math.Cos(crank), 0)
		return func(v geometry.Vector3) geometry.Vector3 {
			return v.Mul(p.Scale).Add(p.Offset).Add(lift)
		}
	default:
		return func(v geometry.Vector3) geometry.Vector3 {
			return v.Mul(p.Scale).Add(p.Offset)
		}
	}
}

// DefaultColor is used for parts without a color.
var DefaultColor = color.RGBA{R: 0xa0, G: 0xa8, B: 0xb4, A: 0xff}

// ParseColor parses #rrggbb. An empty string yields DefaultColor.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return DefaultColor, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
