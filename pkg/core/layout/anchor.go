package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/geom"
)

func (e *Engine) anchors(d *diagram.Diagram, id diagram.EdgeID, memo map[diagram.NodeID]geom.Rectangle) Anchors {
	edge, ok := d.Edge(id)
	if !ok {
		panic(fmt.Sprintf("layout: edge %d is not in the diagram", id))
	}
	start := e.bounds(d, edge.Start, memo)
	end := e.bounds(d, edge.End, memo)

	if edge.Type.IsNoteConnector() {
		return Anchors{Start: e.noteStart(start), End: end.Center()}
	}
	return clip(start, end)
}

func (e *Engine) noteStart(r geom.Rectangle) geom.Point {
	return geom.Point{X: r.X + min(e.cfg.NoteInset, r.Width/2), Y: r.Y}
}

// clip returns the anchors of an ordinary edge from a to b.
func clip(a, b geom.Rectangle) Anchors {
	ca, cb := a.Center(), b.Center()
	dx, dy := cb.X-ca.X, cb.Y-ca.Y

	if math.Abs(dx) >= math.Abs(dy) {
		return Anchors{
			Start: horizontalAnchor(a, dx, dy),
			End:   horizontalAnchor(b, -dx, -dy),
		}
	}
	return Anchors{
		Start: verticalAnchor(a, dx, dy),
		End:   verticalAnchor(b, -dx, -dy),
	}
}

// horizontalAnchor returns the point on the left or right side of r, facing
// direction (dx, dy), where the line from r's center along (dx, dy) meets it.
func horizontalAnchor(r geom.Rectangle, dx, dy float64) geom.Point {
	c := r.Center()
	x := r.MaxX()
	if dx < 0 {
		x = r.X
	}
	y := c.Y
	if dx != 0 {
		y += dy * (r.Width / 2) / math.Abs(dx)
	}
	return geom.Point{X: x, Y: clamp(y, r.Y, r.MaxY())}
}

// verticalAnchor is horizontalAnchor for the top and bottom sides.
func verticalAnchor(r geom.Rectangle, dx, dy float64) geom.Point {
	c := r.Center()
	y := r.MaxY()
	if dy < 0 {
		y = r.Y
	}
	x := c.X + dx*(r.Height/2)/math.Abs(dy)
	return geom.Point{X: clamp(x, r.X, r.MaxX()), Y: y}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
