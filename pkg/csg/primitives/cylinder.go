package primitives

import (
	"fmt"
	"math"

	"github.com/lattice-cad/lattice/pkg/csg"
)

// Cylinder returns a tube of the given radius running from start to end,
// tessellated into slices around its circumference, with triangle-fan
// caps at each end. It returns an error for a degenerate (zero-length)
// axis rather than letting the axis normalization silently produce a
// non-finite solid.
func Cylinder(start, end csg.Vector, radius float64, slices int, shared interface{}) ([]csg.Polygon, error) {
	if slices < 3 {
		return nil, fmt.Errorf("primitives: cylinder requires slices >= 3, got %d", slices)
	}

	ray := end.Sub(start)
	rayLen := ray.Length()
	if rayLen == 0 || math.IsNaN(rayLen) {
		return nil, fmt.Errorf("primitives: cylinder start and end must not coincide")
	}

	axisZ := ray.Unit()
	isY := 0.0
	if math.Abs(axisZ.Y) > 0.5 {
		isY = 1.0
	}
	axisX := csg.NewVector(isY, 1-isY, 0).Cross(axisZ).Unit()
	axisY := axisX.Cross(axisZ).Unit()

	startVertex := csg.NewVertex(start, axisZ.Negate())
	endVertex := csg.NewVertex(end, axisZ)

	point := func(stack, slice, normalBlend float64) csg.Vertex {
		angle := slice * 2 * math.Pi
		out := axisX.Scale(math.Cos(angle)).Add(axisY.Scale(math.Sin(angle)))
		pos := start.Add(ray.Scale(stack)).Add(out.Scale(radius))
		normal := out.Scale(1 - math.Abs(normalBlend)).Add(axisZ.Scale(normalBlend))
		return csg.NewVertex(pos, normal)
	}

	polys := make([]csg.Polygon, 0, slices*3)
	for i := 0; i < slices; i++ {
		t0 := float64(i) / float64(slices)
		t1 := float64(i+1) / float64(slices)

		polys = append(polys, csg.NewPolygon([]csg.Vertex{
			startVertex, point(0, t0, -1), point(0, t1, -1),
		}, shared))
		polys = append(polys, csg.NewPolygon([]csg.Vertex{
			point(0, t1, 0), point(0, t0, 0), point(1, t0, 0), point(1, t1, 0),
		}, shared))
		polys = append(polys, csg.NewPolygon([]csg.Vertex{
			endVertex, point(1, t1, 1), point(1, t0, 1),
		}, shared))
	}
	return polys, nil
}
