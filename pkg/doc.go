// Package pkg provides the libraries behind umlkit, a toolkit for UML class
// diagram documents.
//
// # Overview
//
// A document is a JSON file holding a forest of nodes (classes, interfaces,
// packages, notes) and a list of edges between them. The libraries decode
// such documents into an in-memory [core/diagram], compute the geometry of
// every element with [core/layout], and write the result back out.
//
//  1. [core] - Domain logic (JSON values, diagram model, codec, layout)
//  2. [cache], [config], [observability] - Infrastructure
//  3. [pipeline] - Orchestration (load → layout → export)
//  4. [report], [render/dot] - Output formats for computed layouts
//
// # Architecture
//
//	document.json
//	     ↓
//	[core/jsonvalue] (ordered, integer-only JSON values)
//	     ↓
//	[core/codec] (validated decode into a diagram)
//	     ↓
//	[core/layout] (node bounds, edge anchors)
//	     ↓
//	canonical JSON / layout report / DOT / SVG
//
// # Quick Start
//
//	d, err := io.ImportDiagram("model.json")
//	if err != nil {
//	    return err
//	}
//	engine := layout.New(textmeasure.NewOpenType(), layout.DefaultConfig())
//	l := engine.Compute(d)
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(d, l, dot.Options{}))
//
// [core]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/core
// [core/diagram]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/core/diagram
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/core/layout
// [core/jsonvalue]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/core/jsonvalue
// [core/codec]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/core/codec
// [cache]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/pipeline
// [report]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/report
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/umlkit/pkg/render/dot
package pkg
