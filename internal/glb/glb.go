// Package glb reads generated glTF binary artifacts and reports their
// geometry statistics.
package glb

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

const positionAttribute = "POSITION"

// Stats summarizes the contents of a glTF document.
type Stats struct {
	Generator  string
	Version    string
	Scenes     int
	Nodes      int
	Meshes     int
	Primitives int
	Materials  int
	Vertices   int
	Triangles  int
}

// Open reads the artifact at path. Both .glb and .gltf are accepted.
func Open(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return doc, nil
}

// Inspect opens the artifact at path and returns its statistics.
func Inspect(path string) (*Stats, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}
	stats := StatsOf(doc)
	return &stats, nil
}

// StatsOf computes statistics for doc. Vertices are the POSITION counts of
// each primitive; triangles follow the primitive mode.
func StatsOf(doc *gltf.Document) Stats {
	s := Stats{
		Generator: doc.Asset.Generator,
		Version:   doc.Asset.Version,
		Scenes:    len(doc.Scenes),
		Nodes:     len(doc.Nodes),
		Meshes:    len(doc.Meshes),
		Materials: len(doc.Materials),
	}
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			s.Primitives++
			vertices := 0
			if pos, ok := p.Attributes[positionAttribute]; ok {
				vertices = accessorCount(doc, pos)
			}
			s.Vertices += vertices

			elements := vertices
			if p.Indices != nil {
				elements = accessorCount(doc, *p.Indices)
			}
			s.Triangles += triangles(p.Mode, elements)
		}
	}
	return s
}

// accessorCount returns the element count of accessor i, or 0 when it does
// not exist.
func accessorCount(doc *gltf.Document, i int) int {
	if i < 0 || i >= len(doc.Accessors) || doc.Accessors[i] == nil {
		return 0
	}
	return doc.Accessors[i].Count
}

// triangles returns the number of triangles drawn from n elements.
func triangles(mode gltf.PrimitiveMode, n int) int {
	switch mode {
	case gltf.PrimitiveTriangles:
		return n / 3
	case gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
		if n < 3 {
			return 0
		}
		return n - 2
	default:
		return 0
	}
}
