package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/umlkit/pkg/core/diagram"
	errs "github.com/matzehuels/umlkit/pkg/errors"
)

func sample(t *testing.T) *diagram.Diagram {
	t.Helper()
	d := diagram.New()
	p, _ := d.AddNode(diagram.NodeTypePackage, 0, 0, diagram.NoNode)
	a, _ := d.AddNode(diagram.NodeTypeClass, 10, 20, p)
	b, _ := d.AddNode(diagram.NodeTypeInterface, 200, 20, diagram.NoNode)
	if _, err := d.AddEdge(diagram.EdgeTypeGeneralization, a, b); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestExportImportRoundTrip(t *testing.T) {
	d := sample(t)
	for _, ext := range []string{".json", ".jet"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "diagram"+ext)
			if err := ExportDiagram(d, path); err != nil {
				t.Fatalf("ExportDiagram: %v", err)
			}
			got, err := ImportDiagram(path)
			if err != nil {
				t.Fatalf("ImportDiagram: %v", err)
			}
			if !diagram.StructurallyEqual(d, got) {
				t.Error("round trip changed the diagram")
			}

			// exporting the import again is byte-identical
			again := filepath.Join(t.TempDir(), "again"+ext)
			if err := ExportDiagram(got, again); err != nil {
				t.Fatal(err)
			}
			a, _ := os.ReadFile(path)
			b, _ := os.ReadFile(again)
			if !bytes.Equal(a, b) {
				t.Errorf("re-export differs:\n%s\n---\n%s", a, b)
			}
		})
	}
}

func TestWriteDiagramCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDiagram(sample(t), &buf, ""); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\n") {
		t.Errorf("compact output has newlines:\n%s", buf.String())
	}
	d, err := ReadDiagram(&buf)
	if err != nil {
		t.Fatalf("ReadDiagram: %v", err)
	}
	if d.NodeCount() != 3 || d.EdgeCount() != 1 {
		t.Errorf("read %d nodes, %d edges", d.NodeCount(), d.EdgeCount())
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"nodes":[],"edges":[{"type":"NoteEdge","start":1,"end":2}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errs.Code
	}{
		{"missing file", filepath.Join(dir, "nope.json"), errs.ErrCodeFileNotFound},
		{"wrong extension", filepath.Join(dir, "diagram.txt"), errs.ErrCodeInvalidPath},
		{"empty path", "", errs.ErrCodeInvalidPath},
		{"dangling edge", bad, errs.ErrCodeDanglingEdgeReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ImportDiagram(tt.path)
			if d != nil {
				t.Error("diagram returned with error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadDiagramTooLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a large document")
	}
	r := strings.NewReader(strings.Repeat(" ", MaxDocumentSize+1))
	if _, err := ReadDiagram(r); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
