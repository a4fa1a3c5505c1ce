// Package io reads and writes diagram documents.
//
// # Overview
//
// Documents are the JSON form produced by [codec.Encode]: a root object
// with "diagram", "version", "nodes" and "edges" fields. This package adds
// the file handling around the codec:
//
//   - [ReadDiagram] and [WriteDiagram] work on any io.Reader / io.Writer
//   - [ImportDiagram] and [ExportDiagram] work on file paths, checking the
//     path and extension first
//
// Both ".json" and ".jet" extensions are accepted for documents.
//
// # Import
//
//	d, err := io.ImportDiagram("classes.json")
//	if errors.Is(err, errors.ErrCodeDanglingEdgeReference) {
//	    // the file references a node it does not contain
//	}
//
// Import is transactional like the codec: on any failure no diagram is
// returned. A missing file yields FILE_NOT_FOUND.
//
// # Export
//
// [ExportDiagram] writes the canonical indented form, so exporting an
// imported document that was already canonical reproduces it byte for byte.
//
// # Concurrency
//
// Functions in this package hold no state. Writing a diagram while another
// goroutine mutates it is a data race.
//
// [codec.Encode]: github.com/matzehuels/umlkit/pkg/core/codec.Encode
package io
