package diagram

import (
	"fmt"
	"slices"
	"strconv"

	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// PropertyName identifies a property within a schema.
type PropertyName string

// Property names used by the node and edge schemas.
const (
	PropName               PropertyName = "name"
	PropAttributes         PropertyName = "attributes"
	PropMethods            PropertyName = "methods"
	PropContents           PropertyName = "contents"
	PropStartLabel         PropertyName = "startLabel"
	PropMiddleLabel        PropertyName = "middleLabel"
	PropEndLabel           PropertyName = "endLabel"
	PropDirectionality     PropertyName = "directionality"
	PropGeneralizationType PropertyName = "generalizationType"
	PropAggregationType    PropertyName = "aggregationType"
)

// PropertyKind is the value type a property accepts.
type PropertyKind int

const (
	KindString PropertyKind = iota
	KindEnum
	KindBool
)

func (k PropertyKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("PropertyKind(%d)", int(k))
	}
}

// PropertySpec describes one entry of a schema.
type PropertySpec struct {
	Name    PropertyName
	Kind    PropertyKind
	Default Value
	Allowed []string // enum members, in display order
}

// Value is a property value. Strings and enum members are both text;
// the schema decides which one a property holds.
type Value struct {
	kind PropertyKind
	text string
	flag bool
}

// StringValue returns a free-text value.
func StringValue(s string) Value { return Value{kind: KindString, text: s} }

// EnumValue returns an enumerated value.
func EnumValue(s string) Value { return Value{kind: KindEnum, text: s} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind returns the value's kind.
func (v Value) Kind() PropertyKind { return v.kind }

// Text returns the string or enum member. It is empty for booleans.
func (v Value) Text() string { return v.text }

// Bool returns the boolean. It is false for text values.
func (v Value) Bool() bool { return v.flag }

// String formats the value for display.
func (v Value) String() string {
	if v.kind == KindBool {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

func stringProp(name PropertyName) PropertySpec {
	return PropertySpec{Name: name, Kind: KindString, Default: StringValue("")}
}

func enumProp(name PropertyName, def string, allowed ...string) PropertySpec {
	return PropertySpec{Name: name, Kind: KindEnum, Default: EnumValue(def), Allowed: allowed}
}

var nodeSchemas = map[NodeType][]PropertySpec{
	NodeTypeClass:              {stringProp(PropName), stringProp(PropAttributes), stringProp(PropMethods)},
	NodeTypeInterface:          {stringProp(PropName), stringProp(PropMethods)},
	NodeTypePackage:            {stringProp(PropName)},
	NodeTypePackageDescription: {stringProp(PropName), stringProp(PropContents)},
	NodeTypeNote:               {stringProp(PropName)},
	NodeTypePoint:              nil,
}

var edgeSchemas = map[EdgeType][]PropertySpec{
	EdgeTypeAssociation: {
		stringProp(PropStartLabel),
		stringProp(PropMiddleLabel),
		stringProp(PropEndLabel),
		enumProp(PropDirectionality, DirectionalityUnspecified,
			DirectionalityUnspecified, DirectionalityUnidirectional, DirectionalityBidirectional),
	},
	EdgeTypeDependency: {
		stringProp(PropMiddleLabel),
		enumProp(PropDirectionality, DirectionalityUnidirectional,
			DirectionalityUnidirectional, DirectionalityBidirectional),
	},
	EdgeTypeAggregation: {
		stringProp(PropStartLabel),
		stringProp(PropMiddleLabel),
		stringProp(PropEndLabel),
		enumProp(PropAggregationType, AggregationAggregation,
			AggregationAggregation, AggregationComposition),
	},
	EdgeTypeGeneralization: {
		enumProp(PropGeneralizationType, GeneralizationInheritance,
			GeneralizationInheritance, GeneralizationImplementation),
	},
	EdgeTypeNote: nil,
}

// NodeSchema returns the property schema of a node type.
func NodeSchema(t NodeType) []PropertySpec { return slices.Clone(nodeSchemas[t]) }

// EdgeSchema returns the property schema of an edge type.
func EdgeSchema(t EdgeType) []PropertySpec { return slices.Clone(edgeSchemas[t]) }

// Properties holds the schema-checked property values of one element.
// Every property of the schema always has a value; unset ones hold the
// schema default.
type Properties struct {
	specs  []PropertySpec
	values map[PropertyName]Value
}

func newProperties(specs []PropertySpec) *Properties {
	p := &Properties{specs: specs, values: make(map[PropertyName]Value, len(specs))}
	for _, s := range specs {
		p.values[s.Name] = s.Default
	}
	return p
}

// Names returns the property names in schema order.
func (p *Properties) Names() []PropertyName {
	names := make([]PropertyName, len(p.specs))
	for i, s := range p.specs {
		names[i] = s.Name
	}
	return names
}

// Spec returns the schema entry for name.
func (p *Properties) Spec(name PropertyName) (PropertySpec, bool) {
	for _, s := range p.specs {
		if s.Name == name {
			return s, true
		}
	}
	return PropertySpec{}, false
}

// Get returns the value of name.
func (p *Properties) Get(name PropertyName) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Text returns the text of a string or enum property, or "" if absent.
func (p *Properties) Text(name PropertyName) string {
	return p.values[name].text
}

// Set assigns v to name after checking it against the schema.
func (p *Properties) Set(name PropertyName, v Value) error {
	spec, ok := p.Spec(name)
	if !ok {
		return errs.New(errs.ErrCodeInvalidProperty, "no property %q in schema", name)
	}
	if v.kind != spec.Kind {
		return errs.New(errs.ErrCodeInvalidProperty, "property %q expects %s, got %s", name, spec.Kind, v.kind)
	}
	if spec.Kind == KindEnum && !slices.Contains(spec.Allowed, v.text) {
		return errs.New(errs.ErrCodeInvalidProperty, "property %q: %q is not one of %v", name, v.text, spec.Allowed)
	}
	p.values[name] = v
	return nil
}

// SetText is shorthand for setting a string or enum property from text.
func (p *Properties) SetText(name PropertyName, s string) error {
	spec, ok := p.Spec(name)
	if !ok {
		return errs.New(errs.ErrCodeInvalidProperty, "no property %q in schema", name)
	}
	if spec.Kind == KindEnum {
		return p.Set(name, EnumValue(s))
	}
	return p.Set(name, StringValue(s))
}

// Equal reports whether p and o hold the same names and values.
func (p *Properties) Equal(o *Properties) bool {
	if len(p.specs) != len(o.specs) {
		return false
	}
	for i, s := range p.specs {
		if o.specs[i].Name != s.Name || p.values[s.Name] != o.values[s.Name] {
			return false
		}
	}
	return true
}

func (p *Properties) clone() *Properties {
	c := &Properties{specs: p.specs, values: make(map[PropertyName]Value, len(p.values))}
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}
