package csg

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	a := NewVector(1, 2, 3)
	b := NewVector(4, 5, 6)

	if got := a.Add(b); got != (Vector{5, 7, 9}) {
		t.Fatalf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vector{3, 3, 3}) {
		t.Fatalf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Scale(2); got != (Vector{2, 4, 6}) {
		t.Fatalf("Scale = %v, want {2 4 6}", got)
	}
	if got := a.Negate(); got != (Vector{-1, -2, -3}) {
		t.Fatalf("Negate = %v, want {-1 -2 -3}", got)
	}
}

func TestVectorDotCross(t *testing.T) {
	x := NewVector(1, 0, 0)
	y := NewVector(0, 1, 0)

	if dot := x.Dot(y); dot != 0 {
		t.Fatalf("Dot(x,y) = %v, want 0", dot)
	}
	if cross := x.Cross(y); cross != (Vector{0, 0, 1}) {
		t.Fatalf("Cross(x,y) = %v, want {0 0 1}", cross)
	}
}

func TestVectorLengthUnit(t *testing.T) {
	v := NewVector(3, 4, 0)
	if got := v.Length(); got != 5 {
		t.Fatalf("Length = %v, want 5", got)
	}
	u := v.Unit()
	if math.Abs(u.Length()-1) > 1e-12 {
		t.Fatalf("Unit().Length() = %v, want 1", u.Length())
	}
}

func TestVectorUnitZeroLength(t *testing.T) {
	v := NewVector(0, 0, 0)
	u := v.Unit()
	if !math.IsNaN(u.X) || !math.IsNaN(u.Y) || !math.IsNaN(u.Z) {
		t.Fatalf("Unit() of zero vector = %v, want all NaN", u)
	}
}

func TestVectorLerp(t *testing.T) {
	a := NewVector(0, 0, 0)
	b := NewVector(10, 0, 0)

	if got := a.Lerp(b, 0); got != a {
		t.Fatalf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Fatalf("Lerp(t=1) = %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != (Vector{5, 0, 0}) {
		t.Fatalf("Lerp(t=0.5) = %v, want {5 0 0}", got)
	}
}
