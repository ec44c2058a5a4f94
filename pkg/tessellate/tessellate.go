// Package tessellate walks a design graph and produces triangle meshes
// using a geometry kernel. Boolean and transform nodes are resolved into a
// single kernel.Solid before meshing; group nodes fan out into one mesh per
// reachable primitive/boolean subtree.
package tessellate

import (
	"fmt"
	"math"

	"github.com/lattice-cad/lattice/pkg/graph"
	"github.com/lattice-cad/lattice/pkg/kernel"
	"github.com/sirupsen/logrus"
)

// Tessellate walks the design graph and produces one triangle mesh per
// reachable primitive/transform/boolean subtree using the provided geometry
// kernel. The tessellator is read-only and never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			logrus.WithField("node", rootID.Short()).Warn("tessellate: root references missing node, skipping")
			continue
		}
		collected, err := walkNode(g, k, root)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

// walkNode traverses group nodes transparently, producing one mesh for
// every primitive, transform, or boolean subtree it encounters.
func walkNode(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) ([]*kernel.Mesh, error) {
	switch n.Kind {
	case graph.NodeGroup:
		return handleGroup(g, k, n)

	case graph.NodePrimitive, graph.NodeTransform, graph.NodeBoolean:
		solid, err := resolveSolid(g, k, n)
		if err != nil {
			return nil, err
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
		}
		if n.Name != "" {
			mesh.PartName = n.Name
		} else {
			mesh.PartName = n.ID.Short()
		}
		return []*kernel.Mesh{mesh}, nil

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// handleGroup recurses into children transparently, concatenating their
// meshes without introducing a solid of its own.
func handleGroup(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, k, child)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// resolveSolid resolves a primitive, transform, or boolean node into a
// single kernel.Solid, recursing into child solids as needed.
func resolveSolid(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return resolvePrimitive(k, n)

	case graph.NodeTransform:
		return resolveTransform(g, k, n)

	case graph.NodeBoolean:
		return resolveBoolean(g, k, n)

	default:
		return nil, fmt.Errorf("node %s of kind %v cannot be resolved to a solid", n.ID.Short(), n.Kind)
	}
}

// resolvePrimitive constructs a kernel solid for a primitive node.
func resolvePrimitive(k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case graph.CuboidData:
		// kernel.Box spans [0,x]x[0,y]x[0,z], with its centroid at
		// (x/2, y/2, z/2), not at the origin. Shift it so the box is
		// centered on Center as CuboidData promises.
		solid := k.Box(data.Radius.X*2, data.Radius.Y*2, data.Radius.Z*2)
		offset := data.Center.Add(data.Radius.Scale(-1))
		if offset != (graph.Vec3{}) {
			solid = k.Translate(solid, offset.X, offset.Y, offset.Z)
		}
		return solid, nil

	case graph.SphereData:
		solid := k.Sphere(data.Radius, data.Slices, data.Stacks)
		if data.Center != (graph.Vec3{}) {
			solid = k.Translate(solid, data.Center.X, data.Center.Y, data.Center.Z)
		}
		return solid, nil

	case graph.CylinderData:
		height := distance(data.Start, data.End)
		solid := k.Cylinder(height, data.Radius, data.Slices)
		// kernel.Cylinder is centered at the origin along its own axis;
		// orient and place it along Start->End.
		solid = orientCylinder(k, solid, data.Start, data.End)
		return solid, nil

	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

// resolveTransform resolves the single child of a transform node and
// applies rotation followed by translation.
func resolveTransform(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	children := g.Children(n)
	if len(children) != 1 {
		return nil, fmt.Errorf("transform node %s has %d children, want 1", n.ID.Short(), len(children))
	}

	solid, err := resolveSolid(g, k, children[0])
	if err != nil {
		return nil, err
	}

	if td.Rotation != nil {
		r := *td.Rotation
		if r.X != 0 || r.Y != 0 || r.Z != 0 {
			solid = k.Rotate(solid, r.X, r.Y, r.Z)
		}
	}
	if td.Translation != nil {
		t := *td.Translation
		if t.X != 0 || t.Y != 0 || t.Z != 0 {
			solid = k.Translate(solid, t.X, t.Y, t.Z)
		}
	}

	return solid, nil
}

// resolveBoolean resolves a boolean node's operands and combines them.
func resolveBoolean(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	bd, ok := n.Data.(graph.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	children := g.Children(n)

	if bd.Op == graph.OpComplement {
		if len(children) != 1 {
			return nil, fmt.Errorf("complement node %s has %d children, want 1", n.ID.Short(), len(children))
		}
		a, err := resolveSolid(g, k, children[0])
		if err != nil {
			return nil, err
		}
		return k.Complement(a), nil
	}

	if len(children) != 2 {
		return nil, fmt.Errorf("%s node %s has %d children, want 2", bd.Op, n.ID.Short(), len(children))
	}
	a, err := resolveSolid(g, k, children[0])
	if err != nil {
		return nil, err
	}
	b, err := resolveSolid(g, k, children[1])
	if err != nil {
		return nil, err
	}

	switch bd.Op {
	case graph.OpUnion:
		return k.Union(a, b), nil
	case graph.OpDifference:
		return k.Difference(a, b), nil
	case graph.OpIntersection:
		return k.Intersection(a, b), nil
	default:
		return nil, fmt.Errorf("boolean node %s has unknown op %v", n.ID.Short(), bd.Op)
	}
}

func distance(a, b graph.Vec3) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// orientCylinder reorients a solid produced by kernel.Cylinder — which is
// always centered at the origin running along the Z axis — so that its
// axis runs from start to end. A cylinder is rotationally symmetric about
// its own axis, so only elevation and azimuth need to be solved for; the
// roll angle is left at zero.
func orientCylinder(k kernel.Kernel, solid kernel.Solid, start, end graph.Vec3) kernel.Solid {
	length := distance(start, end)
	if length == 0 {
		return solid
	}
	dx := (end.X - start.X) / length
	dy := (end.Y - start.Y) / length
	dz := (end.Z - start.Z) / length

	elevation := math.Acos(clamp(dz, -1, 1))
	sinElevation := math.Sqrt(dx*dx + dy*dy)
	azimuth := 0.0
	if sinElevation > 1e-12 {
		azimuth = math.Atan2(dy, dx)
	}

	solid = k.Rotate(solid, 0, elevation*180/math.Pi, azimuth*180/math.Pi)

	mid := start.Add(end).Scale(0.5)
	return k.Translate(solid, mid.X, mid.Y, mid.Z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
