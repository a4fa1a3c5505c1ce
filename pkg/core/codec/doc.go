// Package codec maps diagrams to and from their JSON document form.
//
// A document is a single JSON object:
//
//	{
//	  "diagram": "ClassDiagram",
//	  "version": "3.8",
//	  "nodes": [
//	    {"id": 0, "type": "PackageNode", "x": 20, "y": 100, "name": "model",
//	     "children": [{"id": 1, "type": "ClassNode", "x": 30, "y": 130, ...}]}
//	  ],
//	  "edges": [
//	    {"id": 2, "type": "DependencyEdge", "start": 1, "end": 0, ...}
//	  ]
//	}
//
// Node ids are assigned in pre-order over the containment forest and edge
// ids continue after the last node id. Children carry diagram-global
// coordinates, exactly like roots. Properties appear as plain fields after
// the structural ones, in schema order.
//
// [Decode] is transactional: it returns either a complete, validated
// diagram or an error and no diagram. Errors carry the codes defined in
// pkg/errors, so callers can tell a syntax problem (MALFORMED_JSON) from
// a dangling edge (DANGLING_EDGE_REFERENCE) with errors.Is.
package codec
