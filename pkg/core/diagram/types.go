package diagram

import "slices"

// DiagramType names the kind of diagram stored in a document.
type DiagramType string

// ClassDiagram is the only diagram type this package models.
const ClassDiagram DiagramType = "ClassDiagram"

// DefaultVersion is written to documents created from scratch.
const DefaultVersion = "3.8"

// NodeType is the closed set of node kinds.
type NodeType string

// Node types.
const (
	NodeTypeClass              NodeType = "ClassNode"
	NodeTypeInterface          NodeType = "InterfaceNode"
	NodeTypePackage            NodeType = "PackageNode"
	NodeTypePackageDescription NodeType = "PackageDescriptionNode"
	NodeTypeNote               NodeType = "NoteNode"
	NodeTypePoint              NodeType = "PointNode"
)

var nodeTypes = []NodeType{
	NodeTypeClass,
	NodeTypeInterface,
	NodeTypePackage,
	NodeTypePackageDescription,
	NodeTypeNote,
	NodeTypePoint,
}

// NodeTypes returns every node type in declaration order.
func NodeTypes() []NodeType { return slices.Clone(nodeTypes) }

// ParseNodeType maps a type tag to a NodeType.
func ParseNodeType(s string) (NodeType, bool) {
	t := NodeType(s)
	return t, t.Valid()
}

// Valid reports whether t is a recognized node type.
func (t NodeType) Valid() bool { return slices.Contains(nodeTypes, t) }

// IsContainer reports whether nodes of this type may own children.
func (t NodeType) IsContainer() bool { return t == NodeTypePackage }

// EdgeType is the closed set of edge kinds.
type EdgeType string

// Edge types.
const (
	EdgeTypeAssociation    EdgeType = "AssociationEdge"
	EdgeTypeDependency     EdgeType = "DependencyEdge"
	EdgeTypeAggregation    EdgeType = "AggregationEdge"
	EdgeTypeGeneralization EdgeType = "GeneralizationEdge"
	EdgeTypeNote           EdgeType = "NoteEdge"
)

var edgeTypes = []EdgeType{
	EdgeTypeAssociation,
	EdgeTypeDependency,
	EdgeTypeAggregation,
	EdgeTypeGeneralization,
	EdgeTypeNote,
}

// EdgeTypes returns every edge type in declaration order.
func EdgeTypes() []EdgeType { return slices.Clone(edgeTypes) }

// ParseEdgeType maps a type tag to an EdgeType.
func ParseEdgeType(s string) (EdgeType, bool) {
	t := EdgeType(s)
	return t, t.Valid()
}

// Valid reports whether t is a recognized edge type.
func (t EdgeType) Valid() bool { return slices.Contains(edgeTypes, t) }

// IsNoteConnector reports whether edges of this type attach a note to
// another element rather than relating two model elements.
func (t EdgeType) IsNoteConnector() bool { return t == EdgeTypeNote }

// Enumerated property values.
const (
	DirectionalityUnspecified    = "Unspecified"
	DirectionalityUnidirectional = "Unidirectional"
	DirectionalityBidirectional  = "Bidirectional"

	GeneralizationInheritance    = "Inheritance"
	GeneralizationImplementation = "Implementation"

	AggregationAggregation = "Aggregation"
	AggregationComposition = "Composition"
)
