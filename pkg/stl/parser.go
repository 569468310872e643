package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/philipparndt/cylinderworks/pkg/geometry"
)

// maxBinaryTriangles bounds the facet count read from a binary header so
// a corrupt asset cannot trigger a huge allocation.
const maxBinaryTriangles = 5_000_000

// ParseFS reads an STL mesh from an asset filesystem.
func ParseFS(fsys fs.FS, name string) (*Model, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh: %w", err)
	}
	defer f.Close()

	model, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return model, nil
}

// Read parses an STL stream, detecting ASCII or binary from the header.
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Some binary exporters also start with "solid", so the ASCII path
	// bails out to binary when no facet keyword follows.
	if string(header) == "solid" {
		probe, _ := br.Peek(512)
		if bytes.Contains(probe, []byte("facet")) || bytes.Contains(probe, []byte("endsolid")) {
			return parseASCII(br)
		}
	}
	return parseBinary(br)
}

func parseASCII(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	model := NewModel("")

	var normal geometry.Vector3
	vertices := make([]geometry.Vector3, 0, 3)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVector(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				normal = v
			}
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)
		case "endfacet":
			if len(vertices) == 3 {
				model.Add(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
			normal = geometry.Vector3{}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("bad coordinate %q", f)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// binaryFacet mirrors the 50-byte little-endian record of binary STL.
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

func parseBinary(r io.Reader) (*Model, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	model := NewModel(strings.TrimSpace(string(bytes.TrimRight(header, "\x00"))))

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}
	if count > maxBinaryTriangles {
		return nil, fmt.Errorf("triangle count %d exceeds limit", count)
	}

	model.Triangles = make([]geometry.Triangle, 0, count)
	var facet binaryFacet
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		model.Add(geometry.NewTriangle(vec(facet.Normal), vec(facet.V1), vec(facet.V2), vec(facet.V3)))
	}
	return model, nil
}

func vec(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
