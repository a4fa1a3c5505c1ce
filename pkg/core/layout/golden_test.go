package layout

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/umlkit/pkg/core/codec"
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/geom"
)

const tolerance = 1e-9

type fixture struct {
	d      *diagram.Diagram
	layout *Layout
	data   []byte
}

func loadFixture(t *testing.T) *fixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "classdiagram1.json"))
	if err != nil {
		t.Fatal(err)
	}
	d, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return &fixture{d: d, layout: newEngine().Compute(d), data: data}
}

func (f *fixture) node(t *testing.T, name string) diagram.NodeID {
	t.Helper()
	for _, id := range f.d.Nodes() {
		n, _ := f.d.Node(id)
		if n.Props.Text(diagram.PropName) == name {
			return id
		}
	}
	t.Fatalf("no node named %s", name)
	return diagram.NoNode
}

func (f *fixture) bounds(t *testing.T, name string) geom.Rectangle {
	t.Helper()
	return f.layout.Bounds[f.node(t, name)]
}

// edge finds the first edge of type et with property prop set to value.
func (f *fixture) edge(t *testing.T, et diagram.EdgeType, prop diagram.PropertyName, value string) Anchors {
	t.Helper()
	for _, id := range f.d.Edges() {
		e, _ := f.d.Edge(id)
		if e.Type == et && (prop == "" || e.Props.Text(prop) == value) {
			return f.layout.Anchors[id]
		}
	}
	t.Fatalf("no %s with %s=%q", et, prop, value)
	return Anchors{}
}

func near(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func TestGoldenNodePositions(t *testing.T) {
	f := loadFixture(t)
	tests := []struct {
		name string
		x, y float64
	}{
		{"Node1", 200, 10},
		{"Node2", 30, 130},
		{"Node3", 200, 130},
		{"Node4", 370, 130},
		{"Node5", 200, 280},
		{"Node6", 440, 290},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := f.bounds(t, tt.name)
			if b.X != tt.x || b.Y != tt.y {
				t.Errorf("origin = (%g, %g), want (%g, %g)", b.X, b.Y, tt.x, tt.y)
			}
		})
	}
}

func TestGoldenDefaultDimensions(t *testing.T) {
	f := loadFixture(t)
	for _, name := range []string{"Node1", "Node2", "Node3", "Node4"} {
		t.Run(name, func(t *testing.T) {
			if got := f.bounds(t, name).Dimension(); got != DefaultDimension(diagram.NodeTypeClass) {
				t.Errorf("dimension = %v", got)
			}
		})
	}
	if got := f.bounds(t, "Node6").Dimension(); got != DefaultDimension(diagram.NodeTypeNote) {
		t.Errorf("note dimension = %v", got)
	}
}

func TestGoldenExpandedClass(t *testing.T) {
	f := loadFixture(t)
	if h := f.bounds(t, "Node5").Height; h <= DefaultDimension(diagram.NodeTypeClass).Height {
		t.Errorf("Node5 height = %g, want more than the default", h)
	}
}

func TestGoldenPackageContainment(t *testing.T) {
	f := loadFixture(t)
	pkg, child := f.bounds(t, "Node7"), f.bounds(t, "Node2")
	if pkg.Origin() != (geom.Point{X: 20, Y: 100}) {
		t.Errorf("package origin = %v", pkg.Origin())
	}
	if !pkg.ContainsRect(child) {
		t.Errorf("package %v does not contain %v", pkg, child)
	}
	if pkg.MaxX() <= child.MaxX() || pkg.MaxY() <= child.MaxY() {
		t.Errorf("package %v not padded around %v", pkg, child)
	}
}

func TestGoldenEdges(t *testing.T) {
	f := loadFixture(t)
	n1, n2, n3 := f.bounds(t, "Node1"), f.bounds(t, "Node2"), f.bounds(t, "Node3")
	n4, n5, n6 := f.bounds(t, "Node4"), f.bounds(t, "Node5"), f.bounds(t, "Node6")

	tests := []struct {
		name       string
		anchors    Anchors
		start, end float64 // expected coordinate on the named axis
		horizontal bool
		from, to   geom.Rectangle
	}{
		{"dependency", f.edge(t, diagram.EdgeTypeDependency, diagram.PropMiddleLabel, "e1"),
			n2.MaxX(), n3.X, true, n2, n3},
		{"implementation", f.edge(t, diagram.EdgeTypeGeneralization, diagram.PropGeneralizationType, diagram.GeneralizationImplementation),
			n3.Y, n1.MaxY(), false, n3, n1},
		{"inheritance", f.edge(t, diagram.EdgeTypeGeneralization, diagram.PropGeneralizationType, diagram.GeneralizationInheritance),
			n5.Y, n3.MaxY(), false, n5, n3},
		{"aggregation", f.edge(t, diagram.EdgeTypeAggregation, diagram.PropAggregationType, diagram.AggregationAggregation),
			n3.MaxX(), n4.X, true, n3, n4},
		{"composition", f.edge(t, diagram.EdgeTypeAggregation, diagram.PropAggregationType, diagram.AggregationComposition),
			n5.MaxX(), n4.X, true, n5, n4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := tt.anchors.Start, tt.anchors.End
			gotStart, gotEnd := s.Y, e.Y
			if tt.horizontal {
				gotStart, gotEnd = s.X, e.X
			}
			if !near(gotStart, tt.start) || !near(gotEnd, tt.end) {
				t.Errorf("anchors %v -> %v, want %g -> %g", s, e, tt.start, tt.end)
			}
			if !tt.from.OnBoundary(s, tolerance) || !tt.to.OnBoundary(e, tolerance) {
				t.Errorf("anchors %v -> %v not on %v and %v", s, e, tt.from, tt.to)
			}
		})
	}

	t.Run("note", func(t *testing.T) {
		a := f.edge(t, diagram.EdgeTypeNote, "", "")
		if !near(geom.BoundsOf(a.Start, a.End).MaxY(), n6.Y) {
			t.Errorf("note edge %v -> %v does not leave from the note's top %g", a.Start, a.End, n6.Y)
		}
		if !n6.OnBoundary(a.Start, tolerance) {
			t.Errorf("start %v not on note %v", a.Start, n6)
		}
		if !n4.Contains(a.End) {
			t.Errorf("end %v not inside %v", a.End, n4)
		}
	})
}

func TestGoldenCanonicalForm(t *testing.T) {
	f := loadFixture(t)
	out, err := codec.EncodeIndent(f.d, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(f.data) {
		t.Errorf("re-encoded fixture differs:\n%s", out)
	}
}
