// Package diagram is the in-memory model of a UML class diagram.
//
// # Ownership
//
// A [Diagram] owns every node and edge it contains. Nodes and edges are
// stored in arenas and addressed by integer handles ([NodeID], [EdgeID]).
// Handles are unique within one diagram and never reused, even after the
// element is removed. Edges reference their endpoints by handle, and the
// containment tree stores child handles rather than pointers, so there are
// no ownership cycles anywhere in the model.
//
// # Containment
//
// Container nodes (packages) hold an ordered list of children. Containment
// forms a forest: every node has at most one parent and there are no cycles.
// Positions are always diagram-global; a child's X/Y are not relative to its
// parent.
//
// # Types and Properties
//
// Node and edge kinds are closed enumerations ([NodeType], [EdgeType]). Each
// kind carries a fixed property schema. Property values are checked against
// the schema on every write, so an enum property can never hold a value
// outside its allowed set.
//
// # Concurrency
//
// A Diagram is not safe for concurrent use. Callers must not mutate a
// diagram while another goroutine lays it out or encodes it.
package diagram
