package codec

import (
	"math"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/jsonvalue"
	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// Decode parses a document and rebuilds the diagram it describes.
func Decode(data []byte) (*diagram.Diagram, error) {
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromJSON(v)
}

// FromJSON rebuilds a diagram from an already parsed document.
func FromJSON(v jsonvalue.Value) (*diagram.Diagram, error) {
	root, ok := v.(*jsonvalue.Object)
	if !ok || root == nil {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "document root must be an object, got %s", jsonvalue.TypeName(v))
	}

	dec := &decoder{d: diagram.New(), refs: map[int64]diagram.NodeID{}}
	if err := dec.header(root); err != nil {
		return nil, err
	}

	nodes, err := arrayField(root, fieldNodes, "document")
	if err != nil {
		return nil, err
	}
	for i, nv := range nodes {
		if err := dec.node(nv, diagram.NoNode, i); err != nil {
			return nil, err
		}
	}

	edges, err := arrayField(root, fieldEdges, "document")
	if err != nil {
		return nil, err
	}
	for i, ev := range edges {
		if err := dec.edge(ev, i); err != nil {
			return nil, err
		}
	}

	if err := dec.d.Validate(); err != nil {
		return nil, err
	}
	return dec.d, nil
}

type decoder struct {
	d    *diagram.Diagram
	refs map[int64]diagram.NodeID // document id -> handle
}

func (dec *decoder) header(root *jsonvalue.Object) error {
	if v, ok := root.Get(fieldDiagram); ok {
		s, ok := v.(jsonvalue.Str)
		if !ok {
			return errs.New(errs.ErrCodeInvalidFormat, "field %q must be a string", fieldDiagram)
		}
		if diagram.DiagramType(s) != diagram.ClassDiagram {
			return errs.New(errs.ErrCodeInvalidFormat, "unsupported diagram type %q", string(s))
		}
	}
	if v, ok := root.Get(fieldVersion); ok {
		s, ok := v.(jsonvalue.Str)
		if !ok {
			return errs.New(errs.ErrCodeInvalidFormat, "field %q must be a string", fieldVersion)
		}
		dec.d.Version = string(s)
	}
	return nil
}

func (dec *decoder) node(v jsonvalue.Value, parent diagram.NodeID, index int) error {
	obj, ok := v.(*jsonvalue.Object)
	if !ok || obj == nil {
		return errs.New(errs.ErrCodeInvalidFormat, "node %d must be an object", index)
	}
	where := "node"

	tag, err := stringField(obj, fieldType, where)
	if err != nil {
		return err
	}
	nt, ok := diagram.ParseNodeType(tag)
	if !ok {
		return errs.New(errs.ErrCodeUnknownNodeType, "unknown node type %q", tag)
	}

	ref, err := intField(obj, fieldID, where)
	if err != nil {
		return err
	}
	if _, dup := dec.refs[ref]; dup {
		return errs.New(errs.ErrCodeDuplicateNodeID, "node id %d is used more than once", ref)
	}
	x, err := coordField(obj, fieldX, ref)
	if err != nil {
		return err
	}
	y, err := coordField(obj, fieldY, ref)
	if err != nil {
		return err
	}

	children, hasChildren := obj.Get(fieldChildren)
	if hasChildren && !nt.IsContainer() {
		return errs.New(errs.ErrCodeInvalidContainment, "node %d: %s cannot have children", ref, nt)
	}

	id, err := dec.d.AddNode(nt, x, y, parent)
	if err != nil {
		return err
	}
	dec.refs[ref] = id

	n, _ := dec.d.Node(id)
	if err := decodeProperties(obj, n.Props, "node", ref); err != nil {
		return err
	}

	if !hasChildren {
		return nil
	}
	arr, ok := children.(jsonvalue.Array)
	if !ok {
		return errs.New(errs.ErrCodeInvalidFormat, "node %d: field %q must be an array", ref, fieldChildren)
	}
	for i, cv := range arr {
		if err := dec.node(cv, id, i); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) edge(v jsonvalue.Value, index int) error {
	obj, ok := v.(*jsonvalue.Object)
	if !ok || obj == nil {
		return errs.New(errs.ErrCodeInvalidFormat, "edge %d must be an object", index)
	}
	where := "edge"

	tag, err := stringField(obj, fieldType, where)
	if err != nil {
		return err
	}
	et, ok := diagram.ParseEdgeType(tag)
	if !ok {
		return errs.New(errs.ErrCodeUnknownEdgeType, "unknown edge type %q", tag)
	}
	if idv, ok := obj.Get(fieldID); ok {
		if _, isInt := idv.(jsonvalue.Int); !isInt {
			return errs.New(errs.ErrCodeInvalidFormat, "edge %d: field %q must be an integer", index, fieldID)
		}
	}

	start, err := dec.endpoint(obj, fieldStart, index)
	if err != nil {
		return err
	}
	end, err := dec.endpoint(obj, fieldEnd, index)
	if err != nil {
		return err
	}

	id, err := dec.d.AddEdge(et, start, end)
	if err != nil {
		return err
	}
	e, _ := dec.d.Edge(id)
	return decodeProperties(obj, e.Props, "edge", int64(index))
}

func (dec *decoder) endpoint(obj *jsonvalue.Object, field string, index int) (diagram.NodeID, error) {
	ref, err := intField(obj, field, "edge")
	if err != nil {
		return diagram.NoNode, err
	}
	id, ok := dec.refs[ref]
	if !ok {
		return diagram.NoNode, errs.New(errs.ErrCodeDanglingEdgeReference,
			"edge %d: %s references unknown node id %d", index, field, ref)
	}
	return id, nil
}

// decodeProperties copies schema properties present in obj into props.
// Keys outside the schema are ignored.
func decodeProperties(obj *jsonvalue.Object, props *diagram.Properties, kind string, ref int64) error {
	for _, name := range props.Names() {
		raw, ok := obj.Get(string(name))
		if !ok {
			continue
		}
		spec, _ := props.Spec(name)

		var v diagram.Value
		switch raw := raw.(type) {
		case jsonvalue.Str:
			if spec.Kind == diagram.KindEnum {
				v = diagram.EnumValue(string(raw))
			} else {
				v = diagram.StringValue(string(raw))
			}
		case jsonvalue.Bool:
			v = diagram.BoolValue(bool(raw))
		default:
			return errs.New(errs.ErrCodeInvalidProperty, "%s %d: property %q has unsupported value of type %s",
				kind, ref, name, jsonvalue.TypeName(raw))
		}
		if err := props.Set(name, v); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidProperty, err, "%s %d", kind, ref)
		}
	}
	return nil
}

func stringField(obj *jsonvalue.Object, field, where string) (string, error) {
	v, ok := obj.Get(field)
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidFormat, "%s is missing field %q", where, field)
	}
	s, ok := v.(jsonvalue.Str)
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidFormat, "%s field %q must be a string, got %s", where, field, jsonvalue.TypeName(v))
	}
	return string(s), nil
}

func intField(obj *jsonvalue.Object, field, where string) (int64, error) {
	v, ok := obj.Get(field)
	if !ok {
		return 0, errs.New(errs.ErrCodeInvalidFormat, "%s is missing field %q", where, field)
	}
	n, ok := v.(jsonvalue.Int)
	if !ok {
		return 0, errs.New(errs.ErrCodeInvalidFormat, "%s field %q must be an integer, got %s", where, field, jsonvalue.TypeName(v))
	}
	return int64(n), nil
}

func coordField(obj *jsonvalue.Object, field string, ref int64) (int, error) {
	n, err := intField(obj, field, "node")
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errs.New(errs.ErrCodeInvalidFormat, "node %d: %s coordinate %d out of range", ref, field, n)
	}
	return int(n), nil
}

func arrayField(obj *jsonvalue.Object, field, where string) (jsonvalue.Array, error) {
	v, ok := obj.Get(field)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "%s is missing field %q", where, field)
	}
	arr, ok := v.(jsonvalue.Array)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "%s field %q must be an array, got %s", where, field, jsonvalue.TypeName(v))
	}
	return arr, nil
}
