package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/umlkit/pkg/core/codec"
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// MaxDocumentSize bounds how much ReadDiagram will read.
const MaxDocumentSize = 64 << 20

// ReadDiagram decodes a document from r.
// ReadDiagram does not close r.
func ReadDiagram(r io.Reader) (*diagram.Diagram, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document larger than %d bytes", MaxDocumentSize)
	}
	return codec.Decode(data)
}

// ImportDiagram reads the document at path.
func ImportDiagram(path string) (*diagram.Diagram, error) {
	if err := errs.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadDiagram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
