package csg_test

import (
	"math"
	"testing"

	"github.com/lattice-cad/lattice/pkg/csg"
	"github.com/lattice-cad/lattice/pkg/csg/primitives"
)

func cube(center csg.Vector, radius float64) csg.Solid {
	r := csg.NewVector(radius, radius, radius)
	return csg.NewSolid(primitives.Cuboid(center, r, nil))
}

func bounds(polys []csg.Polygon) (min, max csg.Vector) {
	first := true
	for _, p := range polys {
		for _, v := range p.Vertices {
			if first {
				min, max = v.Pos, v.Pos
				first = false
				continue
			}
			min = csg.NewVector(math.Min(min.X, v.Pos.X), math.Min(min.Y, v.Pos.Y), math.Min(min.Z, v.Pos.Z))
			max = csg.NewVector(math.Max(max.X, v.Pos.X), math.Max(max.Y, v.Pos.Y), math.Max(max.Z, v.Pos.Z))
		}
	}
	return min, max
}

// TestUnionBoundingBox is spec scenario S1.
func TestUnionBoundingBox(t *testing.T) {
	a := cube(csg.NewVector(0, 0, 0), 1)
	b := cube(csg.NewVector(0.5, 0.5, 0.5), 1)

	u := a.Union(b)
	polys := u.ToPolygons()
	if len(polys) <= 12 {
		t.Fatalf("union polygon count = %d, want > 12", len(polys))
	}

	min, max := bounds(polys)
	want := csg.NewVector(-1, -1, -1)
	if !approxEqualVec(min, want) {
		t.Fatalf("union bbox min = %v, want %v", min, want)
	}
	wantMax := csg.NewVector(1.5, 1.5, 1.5)
	if !approxEqualVec(max, wantMax) {
		t.Fatalf("union bbox max = %v, want %v", max, wantMax)
	}
}

func approxEqualVec(a, b csg.Vector) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// TestSubtractSphereEngulfsCube: a cube fully contained in a larger
// sphere is entirely clipped away. The cube's corners lie at distance
// √3 ≈ 1.73 from the center, so the tessellated sphere needs a radius
// of 2 (its faces stay beyond 1.9) to contain them.
func TestSubtractSphereEngulfsCube(t *testing.T) {
	c := cube(csg.NewVector(0, 0, 0), 1)
	sphere, err := primitives.Sphere(csg.NewVector(0, 0, 0), 2, 16, 8, nil)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	s := csg.NewSolid(sphere)

	diff := c.Subtract(s)
	if len(diff.ToPolygons()) != 0 {
		t.Fatalf("expected empty polygon list, got %d polygons", len(diff.ToPolygons()))
	}
}

// TestIntersectDisjointCubes is spec scenario S3.
func TestIntersectDisjointCubes(t *testing.T) {
	a := cube(csg.NewVector(0, 0, 0), 1)
	b := cube(csg.NewVector(2, 0, 0), 1)

	inter := a.Intersect(b)
	if len(inter.ToPolygons()) != 0 {
		t.Fatalf("expected empty intersection, got %d polygons", len(inter.ToPolygons()))
	}
}

// TestDoubleInverseSphere is spec scenario S4 / property 1: inverse is an
// involution.
func TestDoubleInverseSphere(t *testing.T) {
	polys, err := primitives.Sphere(csg.NewVector(0, 0, 0), 1, 16, 8, nil)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	s := csg.NewSolid(polys)

	twice := s.Inverse().Inverse()
	if len(twice.ToPolygons()) != len(s.ToPolygons()) {
		t.Fatalf("double-inverse polygon count = %d, want %d", len(twice.ToPolygons()), len(s.ToPolygons()))
	}
	for i, p := range twice.ToPolygons() {
		if !approxEqualVec(p.Plane.Normal, s.ToPolygons()[i].Plane.Normal) {
			t.Fatalf("polygon %d normal changed after double inverse: got %v want %v",
				i, p.Plane.Normal, s.ToPolygons()[i].Plane.Normal)
		}
	}
}

// TestSubtractSelfIsEmpty is spec scenario S6 / property 5.
func TestSubtractSelfIsEmpty(t *testing.T) {
	c := cube(csg.NewVector(0, 0, 0), 1)
	result := c.Subtract(c)
	if len(result.ToPolygons()) != 0 {
		t.Fatalf("cube.Subtract(cube) = %d polygons, want 0", len(result.ToPolygons()))
	}
}

// TestUnionIdempotent is property 2.
func TestUnionIdempotent(t *testing.T) {
	c := cube(csg.NewVector(0, 0, 0), 1)
	u := c.Union(c)
	_, uMax := bounds(u.ToPolygons())
	_, cMax := bounds(c.ToPolygons())
	if !approxEqualVec(uMax, cMax) {
		t.Fatalf("A.Union(A) bbox max = %v, want %v", uMax, cMax)
	}
}

// TestDeMorgan is property 4: ¬(¬A ∪ ¬B) has the same bounding box as A ∩ B.
func TestDeMorgan(t *testing.T) {
	a := cube(csg.NewVector(0, 0, 0), 1)
	b := cube(csg.NewVector(0.5, 0.5, 0.5), 1)

	lhs := a.Inverse().Union(b.Inverse()).Inverse()
	rhs := a.Intersect(b)

	lMin, lMax := bounds(lhs.ToPolygons())
	rMin, rMax := bounds(rhs.ToPolygons())
	if !approxEqualVec(lMin, rMin) || !approxEqualVec(lMax, rMax) {
		t.Fatalf("De Morgan bbox mismatch: lhs=[%v,%v] rhs=[%v,%v]", lMin, lMax, rMin, rMax)
	}
}
