// Package config loads umlkit settings from a TOML file.
//
// Every setting has a default, so a missing file is not an error. A file
// only needs the keys it changes:
//
//	[layout]
//	measurer = "opentype"   # or "approx"
//	font_family = "Go"
//	font_size = 12.0
//	padding = 10.0
//	text_margin = 5.0
//	note_inset = 10.0
//
//	[cache]
//	enabled = true
//	dir = ""                # empty uses the user cache dir
//	ttl = "168h"
//
//	[output]
//	indent = "  "
//	format = "svg"          # default for "render": "dot" or "svg"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umlkit/pkg/core/layout"
	"github.com/matzehuels/umlkit/pkg/core/textmeasure"
	errs "github.com/matzehuels/umlkit/pkg/errors"
	"github.com/matzehuels/umlkit/pkg/fonts"
)

// Measurer names.
const (
	MeasurerOpenType = "opentype"
	MeasurerApprox   = "approx"
)

// Export formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Config is the full settings tree.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Output OutputConfig `toml:"output"`
}

// LayoutConfig controls text measurement and the layout constants.
type LayoutConfig struct {
	Measurer   string  `toml:"measurer"`
	FontFamily string  `toml:"font_family"`
	FontSize   float64 `toml:"font_size"`
	Padding    float64 `toml:"padding"`
	TextMargin float64 `toml:"text_margin"`
	NoteInset  float64 `toml:"note_inset"`
}

// CacheConfig controls the layout cache.
type CacheConfig struct {
	Enabled bool     `toml:"enabled"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
}

// OutputConfig controls written files.
type OutputConfig struct {
	Indent string `toml:"indent"`
	Format string `toml:"format"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	lc := layout.DefaultConfig()
	return Config{
		Layout: LayoutConfig{
			Measurer:   MeasurerOpenType,
			FontFamily: lc.Font.Family,
			FontSize:   lc.Font.Size,
			Padding:    lc.Padding,
			TextMargin: lc.TextMargin,
			NoteInset:  lc.NoteInset,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Output: OutputConfig{
			Indent: "  ",
			Format: FormatSVG,
		},
	}
}

// DefaultPath returns the location of the user config file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "umlkit", "config.toml"), nil
}

// Load reads the file at path over the defaults. An empty path loads the
// file at DefaultPath if it exists.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML settings over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), errs.New(errs.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	l := c.Layout
	if l.Measurer != MeasurerOpenType && l.Measurer != MeasurerApprox {
		return errs.New(errs.ErrCodeInvalidInput, "layout.measurer must be %q or %q, got %q",
			MeasurerOpenType, MeasurerApprox, l.Measurer)
	}
	if l.FontSize <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "layout.font_size must be positive, got %g", l.FontSize)
	}
	for name, v := range map[string]float64{
		"padding":     l.Padding,
		"text_margin": l.TextMargin,
		"note_inset":  l.NoteInset,
	} {
		if v < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "layout.%s must not be negative, got %g", name, v)
		}
	}
	if !slices.Contains([]string{FormatDOT, FormatSVG}, c.Output.Format) {
		return errs.New(errs.ErrCodeInvalidInput, "output.format must be %q or %q, got %q",
			FormatDOT, FormatSVG, c.Output.Format)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// Engine returns the layout constants.
func (l LayoutConfig) Engine() layout.Config {
	return layout.Config{
		Font:       l.Font(),
		Padding:    l.Padding,
		TextMargin: l.TextMargin,
		NoteInset:  l.NoteInset,
	}
}

// Font returns the configured font, with the family normalized to one of
// the embedded families.
func (l LayoutConfig) Font() textmeasure.Font {
	return textmeasure.Font{Family: fonts.Resolve(l.FontFamily), Size: l.FontSize}
}
