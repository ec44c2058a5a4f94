// Package graph defines the design graph types for lattice.
// The design graph is an immutable DAG of primitives, transforms,
// boolean operations, and groups that represents a CSG scene, built by
// evaluating a Lisp expression through pkg/engine and consumed by
// pkg/tessellate to produce solids and meshes.
package graph
