package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/umlkit/pkg/core/codec"
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// DefaultIndent is the indentation used for exported documents.
const DefaultIndent = "  "

// WriteDiagram encodes d and writes it to w. An empty indent writes the
// compact form.
func WriteDiagram(d *diagram.Diagram, w io.Writer, indent string) error {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = codec.Encode(d)
	} else {
		data, err = codec.EncodeIndent(d, indent)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportDiagram writes d to a document file at path in canonical form.
func ExportDiagram(d *diagram.Diagram, path string) error {
	if err := errs.ValidateDocumentPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDiagram(d, f, DefaultIndent); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
