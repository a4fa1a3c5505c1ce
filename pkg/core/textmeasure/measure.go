package textmeasure

import (
	"fmt"
	"strings"

	"github.com/matzehuels/umlkit/pkg/core/geom"
	"github.com/matzehuels/umlkit/pkg/fonts"
)

// Font describes the typeface used to render text.
type Font struct {
	Family string
	Size   float64 // points
}

// DefaultFont is the font used when none is configured.
var DefaultFont = Font{Family: fonts.DefaultFamily, Size: fonts.DefaultSize}

func (f Font) String() string { return fmt.Sprintf("%s %gpt", f.Family, f.Size) }

// Measurer returns the size of text rendered in a font.
// Implementations must be deterministic for a given font and text.
type Measurer interface {
	Measure(f Font, text string) geom.Dimension
}

func lines(text string) []string {
	return strings.Split(text, "\n")
}
