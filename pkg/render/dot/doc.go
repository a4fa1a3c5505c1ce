// Package dot exports laid-out class diagrams to Graphviz.
//
// [ToDOT] writes a DOT graph in which every node is pinned at the position
// the layout engine computed, so Graphviz only draws: it never moves
// anything. Classes and interfaces become record shapes with one field
// per compartment, notes use the note shape and packages the tab shape.
// Edges carry UML arrowheads:
//
//	DependencyEdge          dashed, open arrow
//	AssociationEdge         solid, arrow per directionality
//	GeneralizationEdge      solid (inheritance) or dashed (implementation), hollow triangle
//	AggregationEdge         hollow (aggregation) or filled (composition) diamond at the start
//	NoteEdge                dotted, no arrowheads
//
// [RenderSVG] runs the neato engine on the DOT text to produce SVG.
package dot
