package layout

import (
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/geom"
)

type policy int

const (
	policyFixed policy = iota
	policyContent
	policyContainer
)

func policyOf(t diagram.NodeType) policy {
	switch t {
	case diagram.NodeTypePackage:
		return policyContainer
	case diagram.NodeTypeClass, diagram.NodeTypeInterface,
		diagram.NodeTypePackageDescription, diagram.NodeTypeNote:
		return policyContent
	default:
		return policyFixed
	}
}

var defaultDimensions = map[diagram.NodeType]geom.Dimension{
	diagram.NodeTypeClass:              {Width: 100, Height: 60},
	diagram.NodeTypeInterface:          {Width: 100, Height: 60},
	diagram.NodeTypePackageDescription: {Width: 100, Height: 60},
	diagram.NodeTypeNote:               {Width: 60, Height: 40},
	diagram.NodeTypePackage:            {Width: 100, Height: 80},
	diagram.NodeTypePoint:              {},
}

// DefaultDimension returns the minimum size of a node type.
func DefaultDimension(t diagram.NodeType) geom.Dimension {
	return defaultDimensions[t]
}

// InterfaceStereotype is shown above an interface's name.
const InterfaceStereotype = "«interface»"

// compartments returns the texts stacked inside a content node, top first.
func compartments(n *diagram.Node) []string {
	name := n.Props.Text(diagram.PropName)
	switch n.Type {
	case diagram.NodeTypeClass:
		return []string{name, n.Props.Text(diagram.PropAttributes), n.Props.Text(diagram.PropMethods)}
	case diagram.NodeTypeInterface:
		return []string{InterfaceStereotype + "\n" + name, n.Props.Text(diagram.PropMethods)}
	case diagram.NodeTypePackageDescription:
		return []string{name, n.Props.Text(diagram.PropContents)}
	default:
		return []string{name}
	}
}

func (e *Engine) contentDimension(n *diagram.Node) geom.Dimension {
	var width, height float64
	margin := 2 * e.cfg.TextMargin
	for _, text := range compartments(n) {
		if text == "" {
			continue
		}
		m := e.measure.Measure(e.cfg.Font, text)
		width = max(width, m.Width+margin)
		height += m.Height + margin
	}
	return DefaultDimension(n.Type).Max(geom.Dimension{Width: width, Height: height})
}

func (e *Engine) containerDimension(n *diagram.Node, origin geom.Point, children []diagram.NodeID, memo map[diagram.NodeID]geom.Rectangle) geom.Dimension {
	def := DefaultDimension(n.Type)
	if len(children) == 0 {
		return def
	}
	union := memo[children[0]]
	for _, c := range children[1:] {
		union = union.Union(memo[c])
	}
	extent := geom.Dimension{
		Width:  union.MaxX() - origin.X + e.cfg.Padding,
		Height: union.MaxY() - origin.Y + e.cfg.Padding,
	}
	return def.Max(extent)
}
