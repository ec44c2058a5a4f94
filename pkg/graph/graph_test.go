package graph

import "testing"

func TestNewDesignGraph(t *testing.T) {
	g := New()
	if g.Nodes == nil {
		t.Fatal("Nodes map should be initialized")
	}
	if g.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if g.Defaults.Units != "mm" {
		t.Errorf("default units = %q, want %q", g.Defaults.Units, "mm")
	}
	if g.NodeCount() != 0 {
		t.Errorf("empty graph should have 0 nodes, got %d", g.NodeCount())
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	g := New()

	id := NewNodeID("cuboid/box1")
	node := &Node{
		ID:   id,
		Kind: NodePrimitive,
		Name: "box1",
		Data: CuboidData{Center: Vec3{0, 0, 0}, Radius: Vec3{5, 5, 5}},
	}
	g.AddNode(node)
	g.AddRoot(id)

	if g.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", g.NodeCount())
	}

	found := g.Lookup("box1")
	if found == nil {
		t.Fatal("Lookup('box1') returned nil")
	}
	if found.ID != id {
		t.Errorf("lookup returned wrong node")
	}

	must := g.MustLookup("box1")
	if must.ID != id {
		t.Errorf("MustLookup returned wrong node")
	}

	if g.Lookup("nonexistent") != nil {
		t.Error("Lookup should return nil for missing name")
	}

	got := g.Get(id)
	if got == nil || got.Name != "box1" {
		t.Errorf("Get by ID failed")
	}

	if len(g.Roots) != 1 || g.Roots[0] != id {
		t.Errorf("roots = %v, want [%s]", g.Roots, id.Short())
	}
}

func TestMustLookupPanics(t *testing.T) {
	g := New()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustLookup should panic on missing name")
		}
	}()
	g.MustLookup("missing")
}

func TestPartsAndBooleans(t *testing.T) {
	g := New()

	boxID := NewNodeID("cuboid/box1")
	sphereID := NewNodeID("sphere/sphere1")
	diffID := NewNodeID("difference/diff1")

	g.AddNode(&Node{
		ID: boxID, Kind: NodePrimitive, Name: "box1",
		Data: CuboidData{Radius: Vec3{5, 5, 5}},
	})
	g.AddNode(&Node{
		ID: sphereID, Kind: NodePrimitive, Name: "sphere1",
		Data: SphereData{Radius: 3, Slices: 16, Stacks: 8},
	})
	g.AddNode(&Node{
		ID: diffID, Kind: NodeBoolean, Name: "",
		Children: []NodeID{boxID, sphereID},
		Data:     BooleanData{Op: OpDifference},
	})

	parts := g.Parts()
	if len(parts) != 2 {
		t.Errorf("Parts() count = %d, want 2", len(parts))
	}
	booleans := g.Booleans()
	if len(booleans) != 1 {
		t.Errorf("Booleans() count = %d, want 1", len(booleans))
	}
}

func TestChildren(t *testing.T) {
	g := New()

	childID := NewNodeID("cuboid/leg")
	parentID := NewNodeID("group/table")

	g.AddNode(&Node{
		ID: childID, Kind: NodePrimitive, Name: "leg",
		Data: CuboidData{Radius: Vec3{2, 2, 20}},
	})
	g.AddNode(&Node{
		ID: parentID, Kind: NodeGroup, Name: "table",
		Children: []NodeID{childID},
		Data:     GroupData{},
	})

	parent := g.Get(parentID)
	children := g.Children(parent)
	if len(children) != 1 {
		t.Fatalf("Children count = %d, want 1", len(children))
	}
	if children[0].Name != "leg" {
		t.Errorf("child name = %q, want %q", children[0].Name, "leg")
	}
}

func TestNodeIDDeterministic(t *testing.T) {
	a := NewNodeID("cuboid/box1")
	b := NewNodeID("cuboid/box1")
	if a != b {
		t.Error("same key should produce same NodeID")
	}

	c := NewNodeID("cuboid/box2")
	if a == c {
		t.Error("different keys should produce different NodeIDs")
	}
}

func TestNodeIDZero(t *testing.T) {
	var id NodeID
	if !id.IsZero() {
		t.Error("zero-value NodeID should be zero")
	}
	id = NewNodeID("something")
	if id.IsZero() {
		t.Error("non-zero NodeID should not be zero")
	}
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want (5, 7, 9)", sum)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want (2, 4, 6)", scaled)
	}
}

func TestNodeDataInterface(t *testing.T) {
	// Verify all concrete types implement NodeData at compile time.
	var _ NodeData = CuboidData{}
	var _ NodeData = SphereData{}
	var _ NodeData = CylinderData{}
	var _ NodeData = TransformData{}
	var _ NodeData = BooleanData{}
	var _ NodeData = GroupData{}
}

func TestStringers(t *testing.T) {
	if NodePrimitive.String() != "primitive" {
		t.Errorf("NodePrimitive.String() = %q", NodePrimitive.String())
	}
	if NodeBoolean.String() != "boolean" {
		t.Errorf("NodeBoolean.String() = %q", NodeBoolean.String())
	}
	if OpUnion.String() != "union" {
		t.Errorf("OpUnion.String() = %q", OpUnion.String())
	}
	if PrimSphere.String() != "sphere" {
		t.Errorf("PrimSphere.String() = %q", PrimSphere.String())
	}

	id := NewNodeID("test")
	if len(id.Short()) != 8 {
		t.Errorf("Short() len = %d, want 8", len(id.Short()))
	}

	v := Vec3{1.5, 2.5, 3.5}
	if v.String() != "(1.5, 2.5, 3.5)" {
		t.Errorf("Vec3.String() = %q", v.String())
	}
}
