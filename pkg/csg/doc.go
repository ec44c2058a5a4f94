// Package csg implements Boolean set operations — union, difference,
// intersection, and complement — over 3D solids represented as boundary
// meshes of convex polygons. It follows the classical Naylor/Thibault/
// Amanatides approach: each solid is converted to a Binary Space
// Partitioning (BSP) tree, and Boolean operations are expressed as
// compositions of two primitive tree operations, Node.ClipTo and
// Node.Invert.
//
// The package operates on independent convex polygons only; it does not
// preserve mesh topology (edges, half-edges) and does not weld
// nearly-coincident vertices across operands.
package csg

// Epsilon is the tolerance used by Plane.SplitPolygon to decide whether a
// point lies on the plane. It must be the same for every call within one
// Boolean operation to keep coplanar handling consistent.
const Epsilon = 1e-5
