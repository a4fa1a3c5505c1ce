package report

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/layout"
	"github.com/matzehuels/umlkit/pkg/core/textmeasure"
)

func build(t *testing.T) Report {
	t.Helper()
	return Build(sample(t))
}

func sample(t *testing.T) (*diagram.Diagram, *layout.Layout) {
	t.Helper()
	d := diagram.New()
	p, _ := d.AddNode(diagram.NodeTypePackage, 0, 0, diagram.NoNode)
	a, _ := d.AddNode(diagram.NodeTypeClass, 10, 10, p)
	b, _ := d.AddNode(diagram.NodeTypeClass, 300, 10, diagram.NoNode)
	if _, err := d.AddEdge(diagram.EdgeTypeDependency, a, b); err != nil {
		t.Fatal(err)
	}
	n, _ := d.Node(a)
	_ = n.Props.SetText(diagram.PropName, "A")

	e := layout.New(textmeasure.Approx{}, layout.DefaultConfig())
	return d, e.Compute(d)
}

func TestBuild(t *testing.T) {
	r := build(t)
	if len(r.Nodes) != 3 || len(r.Edges) != 1 {
		t.Fatalf("report has %d nodes, %d edges", len(r.Nodes), len(r.Edges))
	}

	child, ok := r.Node(1)
	if !ok || child.Name != "A" || child.Parent == nil || *child.Parent != 0 {
		t.Errorf("child = %+v", child)
	}
	if root, _ := r.Node(0); root.Parent != nil {
		t.Errorf("root has parent %d", *root.Parent)
	}

	e := r.Edges[0]
	if e.ID != 3 || e.Start != 1 || e.End != 2 {
		t.Errorf("edge = %+v", e)
	}
	if e.StartX != 110 || e.EndX != 300 {
		t.Errorf("anchors x = %g -> %g, want 110 -> 300", e.StartX, e.EndX)
	}
	if r.X != 0 || r.Y != 0 || r.Width != 400 {
		t.Errorf("extent = (%g, %g, %g x %g)", r.X, r.Y, r.Width, r.Height)
	}
}

func TestFileRoundTrip(t *testing.T) {
	r := build(t)
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteFile(r, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != len(r.Nodes) || got.Edges[0] != r.Edges[0] {
		t.Errorf("read back %+v", got)
	}
	if *got.Nodes[1].Parent != 0 {
		t.Error("parent lost")
	}
}

func TestUnmarshalRejectsMissingType(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"nodes":[]}`)); err == nil {
		t.Error("expected error for report without diagram type")
	}
	if _, err := Unmarshal([]byte(`{`)); err == nil {
		t.Error("expected error for malformed report")
	}
}

func TestRestore(t *testing.T) {
	d, l := sample(t)
	got, err := Restore(d, Build(d, l))
	if err != nil {
		t.Fatal(err)
	}
	if got.Extent != l.Extent {
		t.Errorf("extent = %v, want %v", got.Extent, l.Extent)
	}
	for id, b := range l.Bounds {
		if got.Bounds[id] != b {
			t.Errorf("bounds[%d] = %v, want %v", id, got.Bounds[id], b)
		}
	}
	for id, a := range l.Anchors {
		if got.Anchors[id] != a {
			t.Errorf("anchors[%d] = %v, want %v", id, got.Anchors[id], a)
		}
	}

	other := diagram.New()
	if _, err := other.AddNode(diagram.NodeTypeNote, 0, 0, diagram.NoNode); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(other, Build(d, l)); err == nil {
		t.Error("Restore onto a different diagram should fail")
	}
}
