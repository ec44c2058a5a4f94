package primitives

import "github.com/lattice-cad/lattice/pkg/csg"

// cuboidFaces enumerates the six faces of a unit cube by corner index
// (0-7, one bit per axis) and outward normal. This is the classical
// CSG.js cube face table.
var cuboidFaces = []struct {
	corners [4]int
	normal  csg.Vector
}{
	{[4]int{0, 4, 6, 2}, csg.Vector{X: -1}},
	{[4]int{1, 3, 7, 5}, csg.Vector{X: 1}},
	{[4]int{0, 1, 5, 4}, csg.Vector{Y: -1}},
	{[4]int{2, 6, 7, 3}, csg.Vector{Y: 1}},
	{[4]int{0, 2, 3, 1}, csg.Vector{Z: -1}},
	{[4]int{4, 5, 7, 6}, csg.Vector{Z: 1}},
}

func cuboidCorner(center, radius csg.Vector, i int) csg.Vector {
	sign := func(bit int) float64 {
		if i&bit != 0 {
			return 1
		}
		return -1
	}
	return csg.NewVector(
		center.X+radius.X*sign(1),
		center.Y+radius.Y*sign(2),
		center.Z+radius.Z*sign(4),
	)
}

// Cuboid returns the six quad faces of an axis-aligned box centered at
// center with half-extents radius. shared is forwarded to every face's
// Polygon.Shared tag.
func Cuboid(center, radius csg.Vector, shared interface{}) []csg.Polygon {
	polys := make([]csg.Polygon, 0, len(cuboidFaces))
	for _, face := range cuboidFaces {
		vertices := make([]csg.Vertex, 4)
		for i, corner := range face.corners {
			vertices[i] = csg.NewVertex(cuboidCorner(center, radius, corner), face.normal)
		}
		polys = append(polys, csg.NewPolygon(vertices, shared))
	}
	return polys
}
