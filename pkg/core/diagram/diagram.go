package diagram

import (
	"slices"

	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// NodeID is a handle to a node within one diagram.
type NodeID int

// EdgeID is a handle to an edge within one diagram.
type EdgeID int

// NoNode is the parent of a containment root.
const NoNode NodeID = -1

// Node is a diagram element occupying a rectangle.
// X and Y are the top-left corner in diagram-global coordinates.
type Node struct {
	ID    NodeID
	Type  NodeType
	X, Y  int
	Props *Properties

	parent   NodeID
	children []NodeID
}

// Edge is a directed connector between two nodes of the same diagram.
type Edge struct {
	ID    EdgeID
	Type  EdgeType
	Start NodeID
	End   NodeID
	Props *Properties
}

// Diagram owns an arena of nodes and edges.
//
// The zero value is not usable - use New to create a valid Diagram.
type Diagram struct {
	Type    DiagramType
	Version string

	nodes []*Node // indexed by NodeID; nil once removed
	edges []*Edge // indexed by EdgeID; nil once removed
	roots []NodeID
	order []EdgeID
}

// New creates an empty class diagram.
func New() *Diagram {
	return &Diagram{Type: ClassDiagram, Version: DefaultVersion}
}

// AddNode creates a node of type t at (x, y). If parent is not NoNode the
// node is appended to the parent's children, which requires the parent to be
// a container.
func (d *Diagram) AddNode(t NodeType, x, y int, parent NodeID) (NodeID, error) {
	if !t.Valid() {
		return NoNode, errs.New(errs.ErrCodeUnknownNodeType, "unknown node type %q", t)
	}
	if parent != NoNode {
		if err := d.checkContainer(parent); err != nil {
			return NoNode, err
		}
	}

	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, &Node{
		ID:     id,
		Type:   t,
		X:      x,
		Y:      y,
		Props:  newProperties(nodeSchemas[t]),
		parent: parent,
	})
	if parent == NoNode {
		d.roots = append(d.roots, id)
	} else {
		p := d.nodes[parent]
		p.children = append(p.children, id)
	}
	return id, nil
}

// AddEdge connects start to end with an edge of type t.
func (d *Diagram) AddEdge(t EdgeType, start, end NodeID) (EdgeID, error) {
	if !t.Valid() {
		return -1, errs.New(errs.ErrCodeUnknownEdgeType, "unknown edge type %q", t)
	}
	if _, ok := d.Node(start); !ok {
		return -1, errs.New(errs.ErrCodeDanglingEdgeReference, "edge start %d is not in the diagram", start)
	}
	if _, ok := d.Node(end); !ok {
		return -1, errs.New(errs.ErrCodeDanglingEdgeReference, "edge end %d is not in the diagram", end)
	}

	id := EdgeID(len(d.edges))
	d.edges = append(d.edges, &Edge{
		ID:    id,
		Type:  t,
		Start: start,
		End:   end,
		Props: newProperties(edgeSchemas[t]),
	})
	d.order = append(d.order, id)
	return id, nil
}

// Node returns the node with the given handle.
func (d *Diagram) Node(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(d.nodes) || d.nodes[id] == nil {
		return nil, false
	}
	return d.nodes[id], true
}

// Edge returns the edge with the given handle.
func (d *Diagram) Edge(id EdgeID) (*Edge, bool) {
	if id < 0 || int(id) >= len(d.edges) || d.edges[id] == nil {
		return nil, false
	}
	return d.edges[id], true
}

// Roots returns the containment roots in order.
func (d *Diagram) Roots() []NodeID { return slices.Clone(d.roots) }

// Children returns the children of id in order.
func (d *Diagram) Children(id NodeID) []NodeID {
	n, ok := d.Node(id)
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// Parent returns the parent of id. The second result is false for roots
// and unknown nodes.
func (d *Diagram) Parent(id NodeID) (NodeID, bool) {
	n, ok := d.Node(id)
	if !ok || n.parent == NoNode {
		return NoNode, false
	}
	return n.parent, true
}

// Nodes returns every node in pre-order over the containment forest.
func (d *Diagram) Nodes() []NodeID {
	out := make([]NodeID, 0, len(d.nodes))
	stack := make([]NodeID, 0, len(d.roots))
	for i := len(d.roots) - 1; i >= 0; i-- {
		stack = append(stack, d.roots[i])
	}
	seen := make(map[NodeID]bool, len(d.nodes))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		children := d.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// Edges returns every edge in insertion order.
func (d *Diagram) Edges() []EdgeID { return slices.Clone(d.order) }

// EdgesOf returns the edges that start or end at id.
func (d *Diagram) EdgesOf(id NodeID) []EdgeID {
	var out []EdgeID
	for _, eid := range d.order {
		e := d.edges[eid]
		if e.Start == id || e.End == id {
			out = append(out, eid)
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (d *Diagram) NodeCount() int {
	n := 0
	for _, node := range d.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of live edges.
func (d *Diagram) EdgeCount() int { return len(d.order) }

// SetParent moves child under parent, or to the roots when parent is NoNode.
// It fails with CONTAINMENT_CYCLE if parent is child or one of its
// descendants.
func (d *Diagram) SetParent(child, parent NodeID) error {
	c, ok := d.Node(child)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "node %d is not in the diagram", child)
	}
	if parent != NoNode {
		if err := d.checkContainer(parent); err != nil {
			return err
		}
		for p := parent; p != NoNode; p = d.nodes[p].parent {
			if p == child {
				return errs.New(errs.ErrCodeContainmentCycle, "node %d cannot contain its ancestor %d", parent, child)
			}
		}
	}

	d.detach(c)
	c.parent = parent
	if parent == NoNode {
		d.roots = append(d.roots, child)
	} else {
		p := d.nodes[parent]
		p.children = append(p.children, child)
	}
	return nil
}

// RemoveNode deletes id, its whole subtree, and every edge attached to any
// of the deleted nodes.
func (d *Diagram) RemoveNode(id NodeID) error {
	n, ok := d.Node(id)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "node %d is not in the diagram", id)
	}
	d.detach(n)

	doomed := map[NodeID]bool{}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if doomed[cur] {
			continue
		}
		doomed[cur] = true
		stack = append(stack, d.nodes[cur].children...)
	}

	d.order = slices.DeleteFunc(d.order, func(eid EdgeID) bool {
		e := d.edges[eid]
		if doomed[e.Start] || doomed[e.End] {
			d.edges[eid] = nil
			return true
		}
		return false
	})
	for nid := range doomed {
		d.nodes[nid] = nil
	}
	return nil
}

// RemoveEdge deletes an edge.
func (d *Diagram) RemoveEdge(id EdgeID) error {
	if _, ok := d.Edge(id); !ok {
		return errs.New(errs.ErrCodeNotFound, "edge %d is not in the diagram", id)
	}
	d.edges[id] = nil
	d.order = slices.DeleteFunc(d.order, func(eid EdgeID) bool { return eid == id })
	return nil
}

// Clone returns a deep copy with identical handles.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{
		Type:    d.Type,
		Version: d.Version,
		nodes:   make([]*Node, len(d.nodes)),
		edges:   make([]*Edge, len(d.edges)),
		roots:   slices.Clone(d.roots),
		order:   slices.Clone(d.order),
	}
	for i, n := range d.nodes {
		if n == nil {
			continue
		}
		cp := *n
		cp.Props = n.Props.clone()
		cp.children = slices.Clone(n.children)
		c.nodes[i] = &cp
	}
	for i, e := range d.edges {
		if e == nil {
			continue
		}
		cp := *e
		cp.Props = e.Props.clone()
		c.edges[i] = &cp
	}
	return c
}

func (d *Diagram) checkContainer(id NodeID) error {
	p, ok := d.Node(id)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "parent node %d is not in the diagram", id)
	}
	if !p.Type.IsContainer() {
		return errs.New(errs.ErrCodeInvalidContainment, "%s cannot contain other nodes", p.Type)
	}
	return nil
}

// detach unlinks n from its parent's children or from the roots.
func (d *Diagram) detach(n *Node) {
	if n.parent == NoNode {
		d.roots = slices.DeleteFunc(d.roots, func(id NodeID) bool { return id == n.ID })
		return
	}
	if p, ok := d.Node(n.parent); ok {
		p.children = slices.DeleteFunc(p.children, func(id NodeID) bool { return id == n.ID })
	}
}

// Validate checks the forest invariants: every parent link is mirrored by
// exactly one child entry, no node is reachable twice, every live node is
// reachable from a root, and every edge endpoint is live.
func (d *Diagram) Validate() error {
	seen := make(map[NodeID]bool, len(d.nodes))
	var visit func(id, parent NodeID) error
	visit = func(id, parent NodeID) error {
		n, ok := d.Node(id)
		if !ok {
			return errs.New(errs.ErrCodeInvalidContainment, "containment references missing node %d", id)
		}
		if seen[id] {
			return errs.New(errs.ErrCodeContainmentCycle, "node %d is reachable more than once", id)
		}
		seen[id] = true
		if n.parent != parent {
			return errs.New(errs.ErrCodeInvalidContainment, "node %d has inconsistent parent", id)
		}
		if len(n.children) > 0 && !n.Type.IsContainer() {
			return errs.New(errs.ErrCodeInvalidContainment, "%s cannot contain other nodes", n.Type)
		}
		for _, c := range n.children {
			if err := visit(c, id); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range d.roots {
		if err := visit(r, NoNode); err != nil {
			return err
		}
	}
	for _, n := range d.nodes {
		if n != nil && !seen[n.ID] {
			return errs.New(errs.ErrCodeContainmentCycle, "node %d is not reachable from a root", n.ID)
		}
	}
	for _, eid := range d.order {
		e := d.edges[eid]
		if _, ok := d.Node(e.Start); !ok {
			return errs.New(errs.ErrCodeDanglingEdgeReference, "edge %d start %d is not in the diagram", eid, e.Start)
		}
		if _, ok := d.Node(e.End); !ok {
			return errs.New(errs.ErrCodeDanglingEdgeReference, "edge %d end %d is not in the diagram", eid, e.End)
		}
	}
	return nil
}

// StructurallyEqual reports whether a and b describe the same diagram up to
// renumbering of handles: same roots and children in order with equal types,
// positions and properties, and the same edges in order with matching
// endpoints and properties.
func StructurallyEqual(a, b *Diagram) bool {
	if a.Type != b.Type || a.Version != b.Version {
		return false
	}
	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
		return false
	}

	mapping := make(map[NodeID]NodeID, len(a.nodes))
	var match func(x, y []NodeID) bool
	match = func(x, y []NodeID) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			na, nb := a.nodes[x[i]], b.nodes[y[i]]
			if na.Type != nb.Type || na.X != nb.X || na.Y != nb.Y || !na.Props.Equal(nb.Props) {
				return false
			}
			mapping[na.ID] = nb.ID
			if !match(na.children, nb.children) {
				return false
			}
		}
		return true
	}
	if !match(a.roots, b.roots) {
		return false
	}

	for i, eid := range a.order {
		ea, eb := a.edges[eid], b.edges[b.order[i]]
		if ea.Type != eb.Type || !ea.Props.Equal(eb.Props) {
			return false
		}
		if mapping[ea.Start] != eb.Start || mapping[ea.End] != eb.End {
			return false
		}
	}
	return true
}
