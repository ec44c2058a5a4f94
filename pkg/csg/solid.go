package csg

// Solid wraps a polygon list and exposes Boolean set operations. Its
// public API has value semantics: Union, Subtract, Intersect, and Inverse
// never mutate the receiver or the argument — each builds fresh, private
// BSP trees from deep-cloned polygon lists.
type Solid struct {
	polygons []Polygon
}

// NewSolid wraps polys as a Solid. The caller must not mutate polys
// afterward; Solid treats it as owned.
func NewSolid(polys []Polygon) Solid {
	return Solid{polygons: polys}
}

// ToPolygons returns the solid's polygon list.
func (s Solid) ToPolygons() []Polygon {
	return s.polygons
}

func clonePolygons(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.Clone()
	}
	return out
}

// Union returns a new solid representing the space in either s or other.
// Neither operand is modified.
func (s Solid) Union(other Solid) Solid {
	a := NewNode(clonePolygons(s.polygons))
	b := NewNode(clonePolygons(other.polygons))

	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()
	a.Build(b.AllPolygons())

	return NewSolid(a.AllPolygons())
}

// Subtract returns a new solid representing the space in s but not in
// other: A - B = ¬(¬A ∪ B). Neither operand is modified.
func (s Solid) Subtract(other Solid) Solid {
	a := NewNode(clonePolygons(s.polygons))
	b := NewNode(clonePolygons(other.polygons))

	a.Invert()
	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()
	a.Build(b.AllPolygons())
	a.Invert()

	return NewSolid(a.AllPolygons())
}

// Intersect returns a new solid representing the space in both s and
// other: A ∩ B = ¬(¬A ∪ ¬B). Neither operand is modified.
func (s Solid) Intersect(other Solid) Solid {
	a := NewNode(clonePolygons(s.polygons))
	b := NewNode(clonePolygons(other.polygons))

	a.Invert()
	b.ClipTo(a)
	b.Invert()
	a.ClipTo(b)
	b.ClipTo(a)
	a.Build(b.AllPolygons())
	a.Invert()

	return NewSolid(a.AllPolygons())
}

// Inverse returns a new solid representing the complement of s: solid
// space and empty space are swapped. It never touches a BSP tree — only
// the exported polygon set is flipped.
func (s Solid) Inverse() Solid {
	out := make([]Polygon, len(s.polygons))
	for i, p := range s.polygons {
		out[i] = p.Flip()
	}
	return NewSolid(out)
}
