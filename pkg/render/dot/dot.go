package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/geom"
	"github.com/matzehuels/umlkit/pkg/core/layout"
	"github.com/matzehuels/umlkit/pkg/fonts"
)

// Options configures DOT generation.
type Options struct {
	// FontName is the font family written to the graph. Empty uses the
	// default family.
	FontName string
	// FontSize in points. Zero uses the default size.
	FontSize float64
}

const pointsPerInch = 72

// ToDOT converts a diagram and its layout to Graphviz DOT.
// Node names are "n<id>" in the document id numbering.
func ToDOT(d *diagram.Diagram, l *layout.Layout, opts Options) string {
	if opts.FontName == "" {
		opts.FontName = fonts.DefaultFamily
	}
	if opts.FontSize == 0 {
		opts.FontSize = fonts.DefaultSize
	}

	order := d.Nodes()
	names := make(map[diagram.NodeID]string, len(order))
	for i, id := range order {
		names[id] = fmt.Sprintf("n%d", i)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  graph [bgcolor=\"transparent\", splines=line, outputorder=edgesfirst, inputscale=72];\n")
	fmt.Fprintf(&buf, "  node [fixedsize=true, style=filled, fillcolor=white, fontname=%q, fontsize=%g];\n",
		opts.FontName, opts.FontSize)
	fmt.Fprintf(&buf, "  edge [fontname=%q, fontsize=%g];\n", opts.FontName, opts.FontSize)
	buf.WriteString("\n")

	// Pre-order puts containers before their children, so packages are
	// painted underneath.
	for _, id := range order {
		n, _ := d.Node(id)
		b := l.Bounds[id]
		attrs := nodeAttrs(n)
		attrs = append(attrs, placement(b, l.Extent)...)
		fmt.Fprintf(&buf, "  %s [%s];\n", names[id], strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, eid := range d.Edges() {
		e, _ := d.Edge(eid)
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", names[e.Start], names[e.End], strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// placement pins the node's center. Graphviz's y axis points up, so y is
// mirrored inside the diagram extent.
func placement(b, extent geom.Rectangle) []string {
	c := b.Center()
	return []string{
		fmt.Sprintf("pos=\"%g,%g!\"", c.X, extent.MaxY()-c.Y),
		fmt.Sprintf("width=%g", b.Width/pointsPerInch),
		fmt.Sprintf("height=%g", b.Height/pointsPerInch),
	}
}

func nodeAttrs(n *diagram.Node) []string {
	props := n.Props
	switch n.Type {
	case diagram.NodeTypeClass:
		return []string{"shape=record", recordLabel(props.Text(diagram.PropName),
			props.Text(diagram.PropAttributes), props.Text(diagram.PropMethods))}
	case diagram.NodeTypeInterface:
		return []string{"shape=record", recordLabel(layout.InterfaceStereotype+"\n"+props.Text(diagram.PropName),
			props.Text(diagram.PropMethods))}
	case diagram.NodeTypePackageDescription:
		return []string{"shape=record", recordLabel(props.Text(diagram.PropName), props.Text(diagram.PropContents))}
	case diagram.NodeTypePackage:
		return []string{"shape=tab", "labelloc=t", "labeljust=l", fmt.Sprintf("label=%q", props.Text(diagram.PropName))}
	case diagram.NodeTypeNote:
		return []string{"shape=note", "fillcolor=\"#ffffcc\"", fmt.Sprintf("label=%q", props.Text(diagram.PropName))}
	default:
		return []string{"shape=point", "label=\"\""}
	}
}

// recordLabel builds a vertical record with the name centered and the
// remaining compartments left-justified. Empty compartments after the name
// are dropped.
func recordLabel(name string, rest ...string) string {
	fields := []string{escapeRecord(name, `\n`)}
	for _, r := range rest {
		if r != "" {
			fields = append(fields, escapeRecord(r, `\l`)+`\l`)
		}
	}
	return `label="{` + strings.Join(fields, "|") + `}"`
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeRecord(s, newline string) string {
	return strings.ReplaceAll(recordEscaper.Replace(s), "\n", newline)
}

func edgeAttrs(e *diagram.Edge) []string {
	props := e.Props
	var attrs []string
	switch e.Type {
	case diagram.EdgeTypeDependency:
		attrs = []string{"style=dashed", "arrowhead=vee"}
		if props.Text(diagram.PropDirectionality) == diagram.DirectionalityBidirectional {
			attrs = append(attrs, "dir=both", "arrowtail=vee")
		}
	case diagram.EdgeTypeAssociation:
		switch props.Text(diagram.PropDirectionality) {
		case diagram.DirectionalityUnidirectional:
			attrs = []string{"arrowhead=vee"}
		case diagram.DirectionalityBidirectional:
			attrs = []string{"dir=both", "arrowhead=vee", "arrowtail=vee"}
		default:
			attrs = []string{"arrowhead=none"}
		}
	case diagram.EdgeTypeGeneralization:
		attrs = []string{"arrowhead=empty"}
		if props.Text(diagram.PropGeneralizationType) == diagram.GeneralizationImplementation {
			attrs = append(attrs, "style=dashed")
		}
	case diagram.EdgeTypeAggregation:
		tail := "odiamond"
		if props.Text(diagram.PropAggregationType) == diagram.AggregationComposition {
			tail = "diamond"
		}
		attrs = []string{"dir=both", "arrowhead=none", "arrowtail=" + tail}
	case diagram.EdgeTypeNote:
		attrs = []string{"style=dotted", "arrowhead=none"}
	}

	for _, l := range []struct {
		prop diagram.PropertyName
		attr string
	}{
		{diagram.PropStartLabel, "taillabel"},
		{diagram.PropMiddleLabel, "label"},
		{diagram.PropEndLabel, "headlabel"},
	} {
		if s := props.Text(l.prop); s != "" {
			attrs = append(attrs, fmt.Sprintf("%s=%q", l.attr, s))
		}
	}
	return attrs
}
