// Package report defines the serializable form of a computed layout.
//
// A [Report] lists every node's bounding box and every edge's anchor points
// in the same id numbering the document codec writes: nodes in pre-order
// over the containment forest, edges after them. External tools can join a
// report to its document by id.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/geom"
	"github.com/matzehuels/umlkit/pkg/core/layout"
)

// =============================================================================
// Report - Layout Serialization Format
// =============================================================================

// Report is the geometry of one diagram.
type Report struct {
	Diagram string  `json:"diagram"`
	Version string  `json:"version"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Nodes   []Node  `json:"nodes"`
	Edges   []Edge  `json:"edges"`
}

// Node is a positioned node.
type Node struct {
	ID     int     `json:"id"`
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
	Parent *int    `json:"parent,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edge is an anchored edge.
type Edge struct {
	ID     int     `json:"id"`
	Type   string  `json:"type"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// Build assembles a report from a diagram and its computed layout.
func Build(d *diagram.Diagram, l *layout.Layout) Report {
	order := d.Nodes()
	ids := make(map[diagram.NodeID]int, len(order))
	for i, id := range order {
		ids[id] = i
	}

	r := Report{
		Diagram: string(d.Type),
		Version: d.Version,
		X:       l.Extent.X,
		Y:       l.Extent.Y,
		Width:   l.Extent.Width,
		Height:  l.Extent.Height,
		Nodes:   make([]Node, 0, len(order)),
		Edges:   make([]Edge, 0, d.EdgeCount()),
	}
	for _, id := range order {
		n, _ := d.Node(id)
		b := l.Bounds[id]
		rn := Node{
			ID:     ids[id],
			Type:   string(n.Type),
			Name:   n.Props.Text(diagram.PropName),
			X:      b.X,
			Y:      b.Y,
			Width:  b.Width,
			Height: b.Height,
		}
		if p, ok := d.Parent(id); ok {
			pid := ids[p]
			rn.Parent = &pid
		}
		r.Nodes = append(r.Nodes, rn)
	}
	for i, eid := range d.Edges() {
		e, _ := d.Edge(eid)
		a := l.Anchors[eid]
		r.Edges = append(r.Edges, Edge{
			ID:     len(order) + i,
			Type:   string(e.Type),
			Start:  ids[e.Start],
			End:    ids[e.End],
			StartX: a.Start.X,
			StartY: a.Start.Y,
			EndX:   a.End.X,
			EndY:   a.End.Y,
		})
	}
	return r
}

// Restore maps a report back onto the handles of d. It fails when the
// report was built from a structurally different diagram.
func Restore(d *diagram.Diagram, r Report) (*layout.Layout, error) {
	order := d.Nodes()
	edges := d.Edges()
	if len(r.Nodes) != len(order) || len(r.Edges) != len(edges) {
		return nil, fmt.Errorf("report has %d nodes and %d edges, diagram has %d and %d",
			len(r.Nodes), len(r.Edges), len(order), len(edges))
	}

	l := &layout.Layout{
		Bounds:  make(map[diagram.NodeID]geom.Rectangle, len(order)),
		Anchors: make(map[diagram.EdgeID]layout.Anchors, len(edges)),
		Extent:  geom.Rectangle{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
	}
	for i, id := range order {
		n, _ := d.Node(id)
		rn := r.Nodes[i]
		if rn.ID != i || rn.Type != string(n.Type) {
			return nil, fmt.Errorf("report node %d does not match diagram", i)
		}
		l.Bounds[id] = geom.Rectangle{X: rn.X, Y: rn.Y, Width: rn.Width, Height: rn.Height}
	}
	for i, id := range edges {
		e, _ := d.Edge(id)
		re := r.Edges[i]
		if re.ID != len(order)+i || re.Type != string(e.Type) {
			return nil, fmt.Errorf("report edge %d does not match diagram", re.ID)
		}
		l.Anchors[id] = layout.Anchors{
			Start: geom.Point{X: re.StartX, Y: re.StartY},
			End:   geom.Point{X: re.EndX, Y: re.EndY},
		}
	}
	return l, nil
}

// Node returns the node with the given id.
func (r *Report) Node(id int) (Node, bool) {
	if id < 0 || id >= len(r.Nodes) || r.Nodes[id].ID != id {
		return Node{}, false
	}
	return r.Nodes[id], true
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Report to pretty-printed JSON bytes.
func Marshal(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Report.
func Unmarshal(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("unmarshal report: %w", err)
	}
	if r.Diagram == "" {
		return Report{}, fmt.Errorf("report is missing the diagram type")
	}
	return r, nil
}

// WriteFile writes a Report to a JSON file.
func WriteFile(r Report, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Report from a JSON file.
func ReadFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
