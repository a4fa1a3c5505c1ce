// Package fonts provides the embedded font families used to measure text.
//
// The fonts are the Go font family shipped with golang.org/x/image, so they
// are available without any files on disk. Families are looked up by name,
// case-insensitively; unknown names fall back to [DefaultFamily].
package fonts

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family names.
const (
	Regular = "Go"
	Bold    = "Go Bold"
	Italic  = "Go Italic"
	Mono    = "Go Mono"
)

// DefaultFamily is used when a requested family is unknown.
const DefaultFamily = Regular

// DefaultSize is the default font size in points.
const DefaultSize = 12.0

// FallbackFontFamily is the CSS font-family list for exported drawings.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var ttf = map[string][]byte{
	strings.ToLower(Regular): goregular.TTF,
	strings.ToLower(Bold):    gobold.TTF,
	strings.ToLower(Italic):  goitalic.TTF,
	strings.ToLower(Mono):    gomono.TTF,
}

// Families returns the available family names.
func Families() []string {
	return []string{Regular, Bold, Italic, Mono}
}

// Known reports whether family names an embedded font.
func Known(family string) bool {
	_, ok := ttf[strings.ToLower(family)]
	return ok
}

// TTF returns the TrueType data for family, falling back to the default.
func TTF(family string) []byte {
	if data, ok := ttf[strings.ToLower(family)]; ok {
		return data
	}
	return goregular.TTF
}

// Parsed fonts are cached after first use.
var (
	parsedMu sync.Mutex
	parsed   = map[string]*opentype.Font{}
)

// Parse returns the parsed font for family. The result is shared and must
// not be modified.
func Parse(family string) (*opentype.Font, error) {
	key := strings.ToLower(family)
	if !Known(family) {
		key = strings.ToLower(DefaultFamily)
	}

	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(ttf[key])
	if err != nil {
		return nil, err
	}
	parsed[key] = f
	return f, nil
}

// Resolve returns the canonical spelling of family, or DefaultFamily.
func Resolve(family string) string {
	i := slices.IndexFunc(Families(), func(f string) bool { return strings.EqualFold(f, family) })
	if i < 0 {
		return DefaultFamily
	}
	return Families()[i]
}
