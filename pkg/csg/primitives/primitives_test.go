package primitives

import (
	"testing"

	"github.com/lattice-cad/lattice/pkg/csg"
)

func TestCuboidFaceCount(t *testing.T) {
	polys := Cuboid(csg.NewVector(0, 0, 0), csg.NewVector(1, 1, 1), nil)
	if len(polys) != 6 {
		t.Fatalf("Cuboid produced %d faces, want 6", len(polys))
	}
	for _, p := range polys {
		if len(p.Vertices) != 4 {
			t.Fatalf("cuboid face has %d vertices, want 4", len(p.Vertices))
		}
	}
}

func TestCuboidExtents(t *testing.T) {
	polys := Cuboid(csg.NewVector(1, 2, 3), csg.NewVector(1, 2, 3), "tag")
	for _, p := range polys {
		if p.Shared != "tag" {
			t.Fatalf("face did not carry shared tag: got %v", p.Shared)
		}
		for _, v := range p.Vertices {
			if v.Pos.X < 0 || v.Pos.X > 2 {
				t.Fatalf("vertex X out of expected range: %v", v.Pos)
			}
		}
	}
}

func TestSphereRejectsTooFewDivisions(t *testing.T) {
	if _, err := Sphere(csg.NewVector(0, 0, 0), 1, 1, 8, nil); err == nil {
		t.Fatal("expected error for slices < 2")
	}
	if _, err := Sphere(csg.NewVector(0, 0, 0), 1, 8, 1, nil); err == nil {
		t.Fatal("expected error for stacks < 2")
	}
}

func TestSphereProducesPolygons(t *testing.T) {
	polys, err := Sphere(csg.NewVector(0, 0, 0), 2, 16, 8, nil)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	if len(polys) != 16*8 {
		t.Fatalf("Sphere produced %d polygons, want %d", len(polys), 16*8)
	}
	for _, p := range polys {
		if len(p.Vertices) < 3 {
			t.Fatalf("degenerate sphere polygon with %d vertices", len(p.Vertices))
		}
	}
}

func TestCylinderRejectsDegenerateAxis(t *testing.T) {
	_, err := Cylinder(csg.NewVector(0, 0, 0), csg.NewVector(0, 0, 0), 1, 16, nil)
	if err == nil {
		t.Fatal("expected error for zero-length cylinder axis")
	}
}

func TestCylinderRejectsTooFewSlices(t *testing.T) {
	_, err := Cylinder(csg.NewVector(0, -1, 0), csg.NewVector(0, 1, 0), 1, 2, nil)
	if err == nil {
		t.Fatal("expected error for slices < 3")
	}
}

func TestCylinderProducesPolygons(t *testing.T) {
	polys, err := Cylinder(csg.NewVector(0, -1, 0), csg.NewVector(0, 1, 0), 1, 16, nil)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	if len(polys) != 16*3 {
		t.Fatalf("Cylinder produced %d polygons, want %d", len(polys), 16*3)
	}
}
