// Package pipeline runs the load → layout → export pipeline for class
// diagram documents.
//
// The CLI drives every command through a [Runner] so that caching, hooks
// and logging behave the same way everywhere.
//
// # Stages
//
//  1. Load: read and decode a document, validating every reference
//  2. Layout: compute node bounds and edge anchors
//  3. Export: write canonical JSON, Graphviz DOT or SVG
//
// Layouts and SVG exports are cached. A layout is keyed by the hash of the
// document's compact canonical encoding together with every layout setting,
// so two files that differ only in whitespace or key order share an entry.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, "model.json", pipeline.Options{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"time"

	"github.com/matzehuels/umlkit/pkg/cache"
	"github.com/matzehuels/umlkit/pkg/config"
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/layout"
	errs "github.com/matzehuels/umlkit/pkg/errors"
	"github.com/matzehuels/umlkit/pkg/report"
)

// Format names accepted by Render.
const (
	FormatJSON = "json"
	FormatDOT  = config.FormatDOT
	FormatSVG  = config.FormatSVG
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options controls a pipeline run.
type Options struct {
	// Config supplies layout constants, the measurer and output settings.
	// The zero value is replaced by config.Default().
	Config config.Config
	// Format overrides Config.Output.Format when set.
	Format string
	// Refresh skips cache reads. Results are still written.
	Refresh bool
}

// Result holds everything produced by Execute.
type Result struct {
	Diagram   *diagram.Diagram
	Layout    *layout.Layout
	Report    report.Report
	Format    string
	Artifact  []byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records stage timings and sizes.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format %q: must be json, dot or svg", format)
	}
	return nil
}

// ValidateAndSetDefaults fills in a zero config and checks the result.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
	if o.Format == "" {
		o.Format = o.Config.Output.Format
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	return o.Config.Validate()
}

// LayoutKeyOpts converts options to cache key options.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	l := o.Config.Layout
	f := l.Font()
	return cache.LayoutKeyOpts{
		Measurer:   l.Measurer,
		FontFamily: f.Family,
		FontSize:   f.Size,
		Padding:    l.Padding,
		TextMargin: l.TextMargin,
		NoteInset:  l.NoteInset,
	}
}
