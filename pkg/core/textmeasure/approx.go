package textmeasure

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/umlkit/pkg/core/geom"
)

const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.25
)

// Approx estimates text size from the character count.
type Approx struct{}

// Measure implements [Measurer].
func (Approx) Measure(f Font, text string) geom.Dimension {
	if text == "" {
		return geom.Dimension{}
	}
	ls := lines(text)
	widest := 0
	for _, l := range ls {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	return geom.Dimension{
		Width:  math.Round(float64(widest) * f.Size * charWidthRatio),
		Height: math.Round(float64(len(ls)) * f.Size * lineHeightRatio),
	}
}
