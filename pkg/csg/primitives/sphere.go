package primitives

import (
	"fmt"
	"math"

	"github.com/lattice-cad/lattice/pkg/csg"
)

// Sphere returns a latitude/longitude tessellation of a sphere centered
// at center with the given radius, slices (longitude divisions) and
// stacks (latitude divisions). Polar rings are emitted as triangles, all
// other rings as quads, matching the classic CSG.js sphere tessellator.
// It returns an error if slices or stacks is less than 2.
func Sphere(center csg.Vector, radius float64, slices, stacks int, shared interface{}) ([]csg.Polygon, error) {
	if slices < 2 || stacks < 2 {
		return nil, fmt.Errorf("primitives: sphere requires slices >= 2 and stacks >= 2, got slices=%d stacks=%d", slices, stacks)
	}

	vertexAt := func(theta, phi float64) csg.Vertex {
		theta *= 2 * math.Pi
		phi *= math.Pi
		dir := csg.NewVector(
			math.Cos(theta)*math.Sin(phi),
			math.Cos(phi),
			math.Sin(theta)*math.Sin(phi),
		)
		return csg.NewVertex(center.Add(dir.Scale(radius)), dir)
	}

	var polys []csg.Polygon
	for i := 0; i < slices; i++ {
		for j := 0; j < stacks; j++ {
			var ring []csg.Vertex
			ring = append(ring, vertexAt(float64(i)/float64(slices), float64(j)/float64(stacks)))
			if j > 0 {
				ring = append(ring, vertexAt(float64(i+1)/float64(slices), float64(j)/float64(stacks)))
			}
			if j < stacks-1 {
				ring = append(ring, vertexAt(float64(i+1)/float64(slices), float64(j+1)/float64(stacks)))
			}
			ring = append(ring, vertexAt(float64(i)/float64(slices), float64(j+1)/float64(stacks)))
			polys = append(polys, csg.NewPolygon(ring, shared))
		}
	}
	return polys, nil
}
