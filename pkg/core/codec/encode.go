package codec

import (
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/jsonvalue"
)

// Document field names.
const (
	fieldDiagram  = "diagram"
	fieldVersion  = "version"
	fieldNodes    = "nodes"
	fieldEdges    = "edges"
	fieldID       = "id"
	fieldType     = "type"
	fieldX        = "x"
	fieldY        = "y"
	fieldChildren = "children"
	fieldStart    = "start"
	fieldEnd      = "end"
)

// Encode serializes d as compact JSON.
func Encode(d *diagram.Diagram) ([]byte, error) {
	s, err := jsonvalue.Write(ToJSON(d))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// EncodeIndent serializes d with one element per line, indented by indent.
func EncodeIndent(d *diagram.Diagram, indent string) ([]byte, error) {
	s, err := jsonvalue.WriteIndent(ToJSON(d), indent)
	if err != nil {
		return nil, err
	}
	return []byte(s + "\n"), nil
}

// ToJSON builds the document object for d.
func ToJSON(d *diagram.Diagram) *jsonvalue.Object {
	ids := make(map[diagram.NodeID]int64, d.NodeCount())
	for i, id := range d.Nodes() {
		ids[id] = int64(i)
	}

	nodes := make(jsonvalue.Array, 0, len(d.Roots()))
	for _, id := range d.Roots() {
		nodes = append(nodes, encodeNode(d, id, ids))
	}

	next := int64(len(ids))
	edges := make(jsonvalue.Array, 0, d.EdgeCount())
	for _, eid := range d.Edges() {
		e, _ := d.Edge(eid)
		obj := jsonvalue.NewObject().
			Set(fieldID, jsonvalue.Int(next)).
			Set(fieldType, jsonvalue.Str(e.Type)).
			Set(fieldStart, jsonvalue.Int(ids[e.Start])).
			Set(fieldEnd, jsonvalue.Int(ids[e.End]))
		encodeProperties(obj, e.Props)
		edges = append(edges, obj)
		next++
	}

	return jsonvalue.NewObject().
		Set(fieldDiagram, jsonvalue.Str(d.Type)).
		Set(fieldVersion, jsonvalue.Str(d.Version)).
		Set(fieldNodes, nodes).
		Set(fieldEdges, edges)
}

func encodeNode(d *diagram.Diagram, id diagram.NodeID, ids map[diagram.NodeID]int64) *jsonvalue.Object {
	n, _ := d.Node(id)
	obj := jsonvalue.NewObject().
		Set(fieldID, jsonvalue.Int(ids[id])).
		Set(fieldType, jsonvalue.Str(n.Type)).
		Set(fieldX, jsonvalue.Int(n.X)).
		Set(fieldY, jsonvalue.Int(n.Y))
	encodeProperties(obj, n.Props)

	if n.Type.IsContainer() {
		children := jsonvalue.Array{}
		for _, c := range d.Children(id) {
			children = append(children, encodeNode(d, c, ids))
		}
		obj.Set(fieldChildren, children)
	}
	return obj
}

func encodeProperties(obj *jsonvalue.Object, props *diagram.Properties) {
	for _, name := range props.Names() {
		v, _ := props.Get(name)
		if v.Kind() == diagram.KindBool {
			obj.Set(string(name), jsonvalue.Bool(v.Bool()))
		} else {
			obj.Set(string(name), jsonvalue.Str(v.Text()))
		}
	}
}
