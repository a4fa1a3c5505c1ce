package textmeasure

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/umlkit/pkg/core/geom"
	"github.com/matzehuels/umlkit/pkg/fonts"
)

// OpenType measures text with glyph metrics from the embedded fonts.
// It is safe for concurrent use.
type OpenType struct {
	mu    sync.Mutex
	faces map[Font]font.Face
}

// NewOpenType returns a measurer with an empty face cache.
func NewOpenType() *OpenType {
	return &OpenType{faces: map[Font]font.Face{}}
}

// Measure implements [Measurer].
func (m *OpenType) Measure(f Font, text string) geom.Dimension {
	if text == "" {
		return geom.Dimension{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.face(f)

	var widest fixed.Int26_6
	ls := lines(text)
	for _, l := range ls {
		widest = max(widest, font.MeasureString(face, l))
	}
	height := face.Metrics().Height.Mul(fixed.I(len(ls)))
	return geom.Dimension{
		Width:  math.Round(toFloat(widest)),
		Height: math.Round(toFloat(height)),
	}
}

// face returns the cached face for f. Callers hold m.mu.
func (m *OpenType) face(f Font) font.Face {
	if face, ok := m.faces[f]; ok {
		return face
	}
	parsed, err := fonts.Parse(f.Family)
	if err != nil {
		panic(fmt.Sprintf("textmeasure: embedded font %q: %v", f.Family, err))
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(fmt.Sprintf("textmeasure: face for %s: %v", f, err))
	}
	m.faces[f] = face
	return face
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
