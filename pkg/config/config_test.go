package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/umlkit/pkg/core/layout"
	errs "github.com/matzehuels/umlkit/pkg/errors"
)

func TestDefaultMatchesLayout(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.Layout.Engine(); got != layout.DefaultConfig() {
		t.Errorf("Engine() = %+v, want %+v", got, layout.DefaultConfig())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[layout]
measurer = "approx"
font_family = "go mono"
font_size = 14.0

[cache]
ttl = "90m"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Layout.Measurer != MeasurerApprox || cfg.Layout.FontSize != 14 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.Font().Family != "Go Mono" {
		t.Errorf("font family = %q", cfg.Layout.Font().Family)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	// untouched keys keep defaults
	if cfg.Layout.Padding != 10 || !cfg.Cache.Enabled || cfg.Output.Format != FormatSVG {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", "[layout\n"},
		{"unknown key", "[layout]\nfont_colour = \"red\"\n"},
		{"bad measurer", "[layout]\nmeasurer = \"magic\"\n"},
		{"zero font size", "[layout]\nfont_size = 0.0\n"},
		{"negative padding", "[layout]\npadding = -1.0\n"},
		{"bad format", "[output]\nformat = \"png\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.toml)); !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "umlkit.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"dot\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != FormatDOT {
		t.Errorf("format = %q", cfg.Output.Format)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file: err = %v", err)
	}
}

func TestLoadWithoutUserFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}
