package layout

import (
	"fmt"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/geom"
	"github.com/matzehuels/umlkit/pkg/core/textmeasure"
)

// Measurer returns the size of text rendered in a font.
type Measurer interface {
	Measure(f textmeasure.Font, text string) geom.Dimension
}

// Config holds the layout constants.
type Config struct {
	Font       textmeasure.Font
	Padding    float64 // container margin around its children
	TextMargin float64 // margin on each side of a text compartment
	NoteInset  float64 // distance of a note edge's start from the note's left side
}

// DefaultConfig returns the standard layout constants.
func DefaultConfig() Config {
	return Config{
		Font:       textmeasure.DefaultFont,
		Padding:    10,
		TextMargin: 5,
		NoteInset:  10,
	}
}

// Engine computes node bounds and edge anchors.
type Engine struct {
	measure Measurer
	cfg     Config
}

// New returns an engine using m for text. A nil m uses [textmeasure.Approx].
func New(m Measurer, cfg Config) *Engine {
	if m == nil {
		m = textmeasure.Approx{}
	}
	return &Engine{measure: m, cfg: cfg}
}

// Config returns the engine's constants.
func (e *Engine) Config() Config { return e.cfg }

// Anchors is the pair of points where an edge meets its nodes.
type Anchors struct {
	Start geom.Point
	End   geom.Point
}

// Layout is the geometry of a whole diagram.
type Layout struct {
	Bounds  map[diagram.NodeID]geom.Rectangle
	Anchors map[diagram.EdgeID]Anchors
	Extent  geom.Rectangle // union of all node bounds
}

// BoundsOf returns the bounding rectangle of node id.
func (e *Engine) BoundsOf(d *diagram.Diagram, id diagram.NodeID) geom.Rectangle {
	memo := map[diagram.NodeID]geom.Rectangle{}
	return e.bounds(d, id, memo)
}

// AnchorsOf returns the start and end anchor of edge id.
func (e *Engine) AnchorsOf(d *diagram.Diagram, id diagram.EdgeID) (geom.Point, geom.Point) {
	a := e.anchors(d, id, map[diagram.NodeID]geom.Rectangle{})
	return a.Start, a.End
}

// Compute lays out every node and edge of d.
func (e *Engine) Compute(d *diagram.Diagram) *Layout {
	memo := make(map[diagram.NodeID]geom.Rectangle, d.NodeCount())
	l := &Layout{
		Bounds:  memo,
		Anchors: make(map[diagram.EdgeID]Anchors, d.EdgeCount()),
	}
	for i, id := range d.Nodes() {
		r := e.bounds(d, id, memo)
		if i == 0 {
			l.Extent = r
		} else {
			l.Extent = l.Extent.Union(r)
		}
	}
	for _, id := range d.Edges() {
		l.Anchors[id] = e.anchors(d, id, memo)
	}
	return l
}

// DiagramBounds returns the union of all node bounds, or the zero rectangle
// for an empty diagram.
func (e *Engine) DiagramBounds(d *diagram.Diagram) geom.Rectangle {
	return e.Compute(d).Extent
}

// bounds computes the rectangle of id after those of its descendants,
// using an explicit post-order walk. Results are stored in memo.
func (e *Engine) bounds(d *diagram.Diagram, id diagram.NodeID, memo map[diagram.NodeID]geom.Rectangle) geom.Rectangle {
	if r, ok := memo[id]; ok {
		return r
	}
	mustNode(d, id)

	type frame struct {
		id       diagram.NodeID
		expanded bool
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if _, done := memo[top.id]; done {
			stack = stack[:len(stack)-1]
			continue
		}
		if !top.expanded {
			top.expanded = true
			for _, c := range d.Children(top.id) {
				if _, done := memo[c]; !done {
					stack = append(stack, frame{id: c})
				}
			}
			continue
		}
		cur := top.id
		stack = stack[:len(stack)-1]
		memo[cur] = e.nodeBounds(d, cur, memo)
	}
	return memo[id]
}

func (e *Engine) nodeBounds(d *diagram.Diagram, id diagram.NodeID, memo map[diagram.NodeID]geom.Rectangle) geom.Rectangle {
	n, _ := d.Node(id)
	origin := geom.Point{X: float64(n.X), Y: float64(n.Y)}

	var dim geom.Dimension
	switch policyOf(n.Type) {
	case policyContainer:
		dim = e.containerDimension(n, origin, d.Children(id), memo)
	case policyContent:
		dim = e.contentDimension(n)
	default:
		dim = DefaultDimension(n.Type)
	}
	return geom.NewRectangle(origin, dim)
}

func mustNode(d *diagram.Diagram, id diagram.NodeID) *diagram.Node {
	n, ok := d.Node(id)
	if !ok {
		panic(fmt.Sprintf("layout: node %d is not in the diagram", id))
	}
	return n
}
