// Package layout resolves the geometry of a class diagram.
//
// Given a diagram and a text measurer, the [Engine] computes a bounding
// rectangle for every node and a pair of anchor points for every edge. The
// engine keeps no state about any diagram: every call reads the diagram's
// current positions, properties, containment and endpoints, so results
// are identical until the diagram changes.
//
// # Node Dimensions
//
// Each node type follows one of three policies, evaluated bottom-up over
// the containment forest:
//
//   - fixed: a type default (point nodes are 0x0)
//   - content: the measured text plus margins, never smaller than the
//     type default. Class-like nodes stack one compartment per non-empty
//     text (name, attributes, methods or contents).
//   - container: the rectangle from the container's own position to the
//     far corner of its children's union, plus padding, never smaller than
//     the type default
//
// A node's bounds are its stored top-left position plus its dimension.
//
// # Edge Anchors
//
// Ordinary edges compare the horizontal and vertical distance between the
// two centers. The larger one picks the sides: left/right when horizontal
// distance dominates or ties, top/bottom otherwise. Each anchor lies where
// the center-to-center line meets the line of the facing side, clamped to
// that side, so aligned centers land on side midpoints.
//
// Note edges start at a fixed inset on the top side of the start node and
// end at the center of the end node, inside its rectangle rather than on
// its border.
//
// Asking for the geometry of a node or edge that is not in the diagram is a
// programming error and panics.
package layout
