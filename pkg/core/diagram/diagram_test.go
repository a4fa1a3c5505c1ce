package diagram

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/umlkit/pkg/errors"
)

func mustNode(t *testing.T, d *Diagram, nt NodeType, x, y int, parent NodeID) NodeID {
	t.Helper()
	id, err := d.AddNode(nt, x, y, parent)
	if err != nil {
		t.Fatalf("AddNode(%s): %v", nt, err)
	}
	return id
}

func mustEdge(t *testing.T, d *Diagram, et EdgeType, start, end NodeID) EdgeID {
	t.Helper()
	id, err := d.AddEdge(et, start, end)
	if err != nil {
		t.Fatalf("AddEdge(%s): %v", et, err)
	}
	return id
}

func TestAddNode(t *testing.T) {
	d := New()
	pkg := mustNode(t, d, NodeTypePackage, 0, 0, NoNode)
	cls := mustNode(t, d, NodeTypeClass, 10, 20, pkg)
	note := mustNode(t, d, NodeTypeNote, 100, 100, NoNode)

	if got := d.Roots(); !slices.Equal(got, []NodeID{pkg, note}) {
		t.Errorf("Roots() = %v", got)
	}
	if got := d.Children(pkg); !slices.Equal(got, []NodeID{cls}) {
		t.Errorf("Children(pkg) = %v", got)
	}
	if p, ok := d.Parent(cls); !ok || p != pkg {
		t.Errorf("Parent(cls) = %v, %v", p, ok)
	}
	if _, ok := d.Parent(pkg); ok {
		t.Error("root should have no parent")
	}
	n, _ := d.Node(cls)
	if n.X != 10 || n.Y != 20 {
		t.Errorf("position = (%d,%d)", n.X, n.Y)
	}
	if got := n.Props.Names(); !slices.Equal(got, []PropertyName{PropName, PropAttributes, PropMethods}) {
		t.Errorf("class schema = %v", got)
	}
}

func TestAddNodeErrors(t *testing.T) {
	d := New()
	cls := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)

	tests := []struct {
		name   string
		typ    NodeType
		parent NodeID
		code   errs.Code
	}{
		{"unknown type", NodeType("ActorNode"), NoNode, errs.ErrCodeUnknownNodeType},
		{"missing parent", NodeTypeClass, 42, errs.ErrCodeNotFound},
		{"non-container parent", NodeTypeNote, cls, errs.ErrCodeInvalidContainment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.AddNode(tt.typ, 0, 0, tt.parent)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if d.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d after failed adds", d.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	d := New()
	a := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	b := mustNode(t, d, NodeTypeInterface, 200, 0, NoNode)

	e := mustEdge(t, d, EdgeTypeGeneralization, a, b)
	edge, ok := d.Edge(e)
	if !ok || edge.Start != a || edge.End != b {
		t.Fatalf("Edge(%d) = %+v", e, edge)
	}
	if got := edge.Props.Text(PropGeneralizationType); got != GeneralizationInheritance {
		t.Errorf("default generalizationType = %q", got)
	}

	if _, err := d.AddEdge(EdgeType("FlowEdge"), a, b); !errs.Is(err, errs.ErrCodeUnknownEdgeType) {
		t.Errorf("unknown edge type: err = %v", err)
	}
	if _, err := d.AddEdge(EdgeTypeDependency, a, 99); !errs.Is(err, errs.ErrCodeDanglingEdgeReference) {
		t.Errorf("dangling end: err = %v", err)
	}
	if d.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d", d.EdgeCount())
	}
}

func TestNodesPreOrder(t *testing.T) {
	d := New()
	p1 := mustNode(t, d, NodeTypePackage, 0, 0, NoNode)
	c1 := mustNode(t, d, NodeTypeClass, 0, 0, p1)
	p2 := mustNode(t, d, NodeTypePackage, 0, 0, p1)
	c2 := mustNode(t, d, NodeTypeClass, 0, 0, p2)
	c3 := mustNode(t, d, NodeTypeClass, 0, 0, p1)
	r2 := mustNode(t, d, NodeTypeNote, 0, 0, NoNode)

	want := []NodeID{p1, c1, p2, c2, c3, r2}
	if got := d.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
}

func TestSetParent(t *testing.T) {
	d := New()
	outer := mustNode(t, d, NodeTypePackage, 0, 0, NoNode)
	inner := mustNode(t, d, NodeTypePackage, 0, 0, outer)
	cls := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)

	if err := d.SetParent(cls, inner); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if got := d.Roots(); !slices.Equal(got, []NodeID{outer}) {
		t.Errorf("Roots() = %v", got)
	}
	if got := d.Children(inner); !slices.Equal(got, []NodeID{cls}) {
		t.Errorf("Children(inner) = %v", got)
	}

	tests := []struct {
		name          string
		child, parent NodeID
		code          errs.Code
	}{
		{"self", outer, outer, errs.ErrCodeContainmentCycle},
		{"descendant", outer, inner, errs.ErrCodeContainmentCycle},
		{"non-container", inner, cls, errs.ErrCodeInvalidContainment},
		{"missing child", 77, outer, errs.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.SetParent(tt.child, tt.parent); !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() after rejected moves: %v", err)
	}

	if err := d.SetParent(cls, NoNode); err != nil {
		t.Fatalf("SetParent to root: %v", err)
	}
	if got := d.Roots(); !slices.Equal(got, []NodeID{outer, cls}) {
		t.Errorf("Roots() = %v", got)
	}
}

func TestRemoveNode(t *testing.T) {
	d := New()
	pkg := mustNode(t, d, NodeTypePackage, 0, 0, NoNode)
	inside := mustNode(t, d, NodeTypeClass, 0, 0, pkg)
	a := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	b := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	mustEdge(t, d, EdgeTypeDependency, a, inside)
	keep := mustEdge(t, d, EdgeTypeAssociation, a, b)

	if err := d.RemoveNode(pkg); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if _, ok := d.Node(inside); ok {
		t.Error("child of removed package still present")
	}
	if got := d.Edges(); !slices.Equal(got, []EdgeID{keep}) {
		t.Errorf("Edges() = %v", got)
	}
	if d.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d", d.NodeCount())
	}
	if err := d.RemoveNode(pkg); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("second remove: err = %v", err)
	}

	// handles are never reused
	c := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	if c == pkg || c == inside {
		t.Errorf("reused handle %d", c)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
}

func TestRemoveEdge(t *testing.T) {
	d := New()
	a := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	b := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	e1 := mustEdge(t, d, EdgeTypeDependency, a, b)
	e2 := mustEdge(t, d, EdgeTypeAggregation, b, a)

	if err := d.RemoveEdge(e1); err != nil {
		t.Fatalf("RemoveEdge: %v", err)
	}
	if got := d.EdgesOf(a); !slices.Equal(got, []EdgeID{e2}) {
		t.Errorf("EdgesOf(a) = %v", got)
	}
	if err := d.RemoveEdge(e1); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("second remove: err = %v", err)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	d := New()
	p := mustNode(t, d, NodeTypePackage, 0, 0, NoNode)
	q := mustNode(t, d, NodeTypePackage, 0, 0, p)

	// bypass SetParent to build p -> q -> p
	d.nodes[p].parent = q
	d.nodes[q].children = append(d.nodes[q].children, p)
	d.roots = nil

	if err := d.Validate(); !errs.Is(err, errs.ErrCodeContainmentCycle) {
		t.Errorf("err = %v, want CONTAINMENT_CYCLE", err)
	}
}

func TestStructurallyEqual(t *testing.T) {
	build := func(t *testing.T, label string) *Diagram {
		d := New()
		p := mustNode(t, d, NodeTypePackage, 20, 100, NoNode)
		a := mustNode(t, d, NodeTypeClass, 30, 130, p)
		b := mustNode(t, d, NodeTypeClass, 200, 130, NoNode)
		e := mustEdge(t, d, EdgeTypeDependency, a, b)
		edge, _ := d.Edge(e)
		if err := edge.Props.SetText(PropMiddleLabel, label); err != nil {
			t.Fatal(err)
		}
		return d
	}

	a := build(t, "uses")
	if !StructurallyEqual(a, build(t, "uses")) {
		t.Error("identical diagrams reported different")
	}
	if !StructurallyEqual(a, a.Clone()) {
		t.Error("clone reported different")
	}
	if StructurallyEqual(a, build(t, "calls")) {
		t.Error("different edge label reported equal")
	}

	// same topology, different handle numbering
	d := New()
	b := mustNode(t, d, NodeTypeClass, 200, 130, NoNode)
	mustNode(t, d, NodeTypeNote, 0, 0, NoNode)
	p := mustNode(t, d, NodeTypePackage, 20, 100, NoNode)
	x := mustNode(t, d, NodeTypeClass, 30, 130, p)
	e := mustEdge(t, d, EdgeTypeDependency, x, b)
	edge, _ := d.Edge(e)
	_ = edge.Props.SetText(PropMiddleLabel, "uses")
	if StructurallyEqual(a, d) {
		t.Error("extra node reported equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := New()
	n := mustNode(t, d, NodeTypeClass, 0, 0, NoNode)
	c := d.Clone()

	node, _ := c.Node(n)
	node.X = 50
	_ = node.Props.SetText(PropName, "Changed")

	orig, _ := d.Node(n)
	if orig.X != 0 || orig.Props.Text(PropName) != "" {
		t.Error("mutating the clone changed the original")
	}
}
