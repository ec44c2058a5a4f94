// Package primitives implements the producer side of the polygon-list
// interface the csg core consumes: cuboid, sphere, and cylinder
// tessellators. These are external collaborators to the BSP/Boolean core
// (github.com/lattice-cad/lattice/pkg/csg) — they emit polygon lists
// satisfying its invariants (coplanar, convex, CCW, ≥3 vertices per face)
// but contain no splitting or clipping logic of their own.
package primitives
