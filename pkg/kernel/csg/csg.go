// Package csg implements the kernel.Kernel interface directly on top of
// pkg/csg's BSP-based solid modeler. Unlike sdfx and manifold it needs no
// cgo and no external SDF library: primitives are built as explicit
// polygon meshes and Boolean operations run the Node.ClipTo choreography
// straight from spec, so ToMesh only has to triangulate convex polygons
// rather than run marching cubes.
package csg

import (
	"fmt"
	"math"

	"github.com/lattice-cad/lattice/pkg/csg"
	"github.com/lattice-cad/lattice/pkg/csg/primitives"
	"github.com/lattice-cad/lattice/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// solid wraps a csg.Solid to implement kernel.Solid.
type solid struct {
	s csg.Solid
}

// BoundingBox returns the axis-aligned bounding box.
func (w *solid) BoundingBox() (min, max [3]float64) {
	polys := w.s.ToPolygons()
	first := true
	for _, p := range polys {
		for _, v := range p.Vertices {
			if first {
				min = [3]float64{v.Pos.X, v.Pos.Y, v.Pos.Z}
				max = min
				first = false
				continue
			}
			min[0] = math.Min(min[0], v.Pos.X)
			min[1] = math.Min(min[1], v.Pos.Y)
			min[2] = math.Min(min[2], v.Pos.Z)
			max[0] = math.Max(max[0], v.Pos.X)
			max[1] = math.Max(max[1], v.Pos.Y)
			max[2] = math.Max(max[2], v.Pos.Z)
		}
	}
	return min, max
}

// Kernel implements kernel.Kernel using the native BSP solid modeler.
type Kernel struct{}

// New returns a new Kernel.
func New() *Kernel {
	return &Kernel{}
}

func unwrap(s kernel.Solid) csg.Solid {
	return s.(*solid).s
}

func wrap(s csg.Solid) kernel.Solid {
	return &solid{s: s}
}

// Box creates a box with the given dimensions, its minimum corner at the
// origin, matching the placement convention of the sdfx backend. (The
// manifold backend centers its box on the origin instead.)
func (k *Kernel) Box(x, y, z float64) kernel.Solid {
	half := csg.NewVector(x/2, y/2, z/2)
	center := half
	polys := primitives.Cuboid(center, half, nil)
	return wrap(csg.NewSolid(polys))
}

// Sphere creates a sphere of the given radius, tessellated with slices
// longitude divisions and stacks latitude divisions, centered at the
// origin. Falls back to a coarse 16x8 tessellation for degenerate inputs
// rather than propagating an error the kernel.Kernel interface has no
// room to return.
func (k *Kernel) Sphere(radius float64, slices, stacks int) kernel.Solid {
	if slices < 2 || stacks < 2 {
		slices, stacks = 16, 8
	}
	polys, err := primitives.Sphere(csg.NewVector(0, 0, 0), radius, slices, stacks, nil)
	if err != nil {
		polys, _ = primitives.Sphere(csg.NewVector(0, 0, 0), radius, 16, 8, nil)
	}
	return wrap(csg.NewSolid(polys))
}

// Cylinder creates a cylinder of the given height and radius, running
// along the Z axis and centered at the origin.
func (k *Kernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments < 3 {
		segments = 16
	}
	start := csg.NewVector(0, 0, -height/2)
	end := csg.NewVector(0, 0, height/2)
	polys, err := primitives.Cylinder(start, end, radius, segments, nil)
	if err != nil {
		polys, _ = primitives.Cylinder(start, end, radius, 16, nil)
	}
	return wrap(csg.NewSolid(polys))
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Union(unwrap(b)))
}

// Difference returns the difference a - b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Subtract(unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Intersect(unwrap(b)))
}

// Complement returns the polygon-flip complement of a solid.
func (k *Kernel) Complement(a kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Inverse())
}

func transformVertex(v csg.Vertex, m func(csg.Vector) csg.Vector, n func(csg.Vector) csg.Vector) csg.Vertex {
	return csg.NewVertex(m(v.Pos), n(v.Normal))
}

func transformPolygons(polys []csg.Polygon, m func(csg.Vector) csg.Vector, n func(csg.Vector) csg.Vector) []csg.Polygon {
	out := make([]csg.Polygon, len(polys))
	for i, p := range polys {
		verts := make([]csg.Vertex, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = transformVertex(v, m, n)
		}
		out[i] = csg.NewPolygon(verts, p.Shared)
	}
	return out
}

// Translate moves a solid by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	offset := csg.NewVector(x, y, z)
	polys := transformPolygons(unwrap(s).ToPolygons(),
		func(p csg.Vector) csg.Vector { return p.Add(offset) },
		func(n csg.Vector) csg.Vector { return n },
	)
	return wrap(csg.NewSolid(polys))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied in that order.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	rx := x * math.Pi / 180
	ry := y * math.Pi / 180
	rz := z * math.Pi / 180

	rotate := func(v csg.Vector) csg.Vector {
		// Rotate about X.
		cy, sy := math.Cos(rx), math.Sin(rx)
		y1 := v.Y*cy - v.Z*sy
		z1 := v.Y*sy + v.Z*cy
		v = csg.NewVector(v.X, y1, z1)

		// Rotate about Y.
		cx, sx := math.Cos(ry), math.Sin(ry)
		x2 := v.X*cx + v.Z*sx
		z2 := -v.X*sx + v.Z*cx
		v = csg.NewVector(x2, v.Y, z2)

		// Rotate about Z.
		cz, sz := math.Cos(rz), math.Sin(rz)
		x3 := v.X*cz - v.Y*sz
		y3 := v.X*sz + v.Y*cz
		return csg.NewVector(x3, y3, v.Z)
	}

	polys := transformPolygons(unwrap(s).ToPolygons(), rotate, rotate)
	return wrap(csg.NewSolid(polys))
}

// ToMesh triangulates every polygon by a fan from vertex 0. Polygons
// produced by pkg/csg and pkg/csg/primitives are always convex, so a fan
// triangulation is exact.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	polys := unwrap(s).ToPolygons()

	var vertices, normals []float32
	var indices []uint32

	for _, p := range polys {
		if len(p.Vertices) < 3 {
			return nil, fmt.Errorf("csg kernel: polygon with %d vertices cannot be triangulated", len(p.Vertices))
		}
		base := uint32(len(vertices) / 3)
		for _, v := range p.Vertices {
			vertices = append(vertices, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Pos.Z))
			normals = append(normals, float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z))
		}
		for i := 1; i < len(p.Vertices)-1; i++ {
			indices = append(indices, base, base+uint32(i), base+uint32(i+1))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
