package csg

import (
	"math"
	"testing"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// 6 quad faces fan-triangulated into 2 triangles each.
	if mesh.TriangleCount() != 12 {
		t.Fatalf("box triangle count = %d, want 12", mesh.TriangleCount())
	}
}

func TestBoxBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	min, max := box.BoundingBox()

	const tol = 1e-9
	if math.Abs(min[0]) > tol || math.Abs(min[1]) > tol || math.Abs(min[2]) > tol {
		t.Fatalf("box min = %v, want origin", min)
	}
	if math.Abs(max[0]-10) > tol || math.Abs(max[1]-10) > tol || math.Abs(max[2]-10) > tol {
		t.Fatalf("box max = %v, want (10,10,10)", max)
	}
}

func TestSphere(t *testing.T) {
	k := New()
	sph := k.Sphere(5, 16, 8)
	mesh, err := k.ToMesh(sph)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}
}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 16)
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("cylinder mesh is empty")
	}
}

func TestDifference(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	sph := k.Translate(k.Sphere(6, 16, 8), 5, 5, 5)
	diff := k.Difference(box, sph)
	mesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
}

func TestUnionAndTranslate(t *testing.T) {
	k := New()
	box1 := k.Box(10, 10, 10)
	box2 := k.Translate(k.Box(10, 10, 10), 5, 0, 0)
	u := k.Union(box1, box2)
	min, max := u.BoundingBox()

	const tol = 1e-9
	if math.Abs(min[0]) > tol {
		t.Fatalf("union min.X = %v, want 0", min[0])
	}
	if math.Abs(max[0]-15) > tol {
		t.Fatalf("union max.X = %v, want 15", max[0])
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(10, 10, 10)
	box2 := k.Translate(k.Box(10, 10, 10), 5, 0, 0)
	inter := k.Intersection(box1, box2)
	mesh, err := k.ToMesh(inter)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("intersection mesh is empty")
	}
}

func TestComplementIsInvolution(t *testing.T) {
	k := New()
	sph := k.Sphere(5, 16, 8)
	twice := k.Complement(k.Complement(sph))
	meshOrig, _ := k.ToMesh(sph)
	meshTwice, _ := k.ToMesh(twice)
	if meshOrig.TriangleCount() != meshTwice.TriangleCount() {
		t.Fatalf("double complement triangle count = %d, want %d", meshTwice.TriangleCount(), meshOrig.TriangleCount())
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)
	centered := k.Translate(box, -50, -5, -5)
	rotated := k.Rotate(centered, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1e-6
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, want ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, want ~100", yExtent)
	}
}
