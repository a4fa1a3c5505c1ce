package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlkit/pkg/cache"
	"github.com/matzehuels/umlkit/pkg/config"
	"github.com/matzehuels/umlkit/pkg/core/codec"
	"github.com/matzehuels/umlkit/pkg/core/diagram"
	"github.com/matzehuels/umlkit/pkg/core/layout"
	"github.com/matzehuels/umlkit/pkg/core/textmeasure"
	uio "github.com/matzehuels/umlkit/pkg/io"
	"github.com/matzehuels/umlkit/pkg/observability"
	"github.com/matzehuels/umlkit/pkg/render/dot"
	"github.com/matzehuels/umlkit/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner does not store pipeline results. Measurers are shared between
// runs so that repeated layouts reuse measured text. Multiple goroutines can
// use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu        sync.Mutex
	measurers map[string]layout.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		measurers: make(map[string]layout.Measurer),
	}
}

// Execute loads the document at path, lays it out and exports it in the
// requested format.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{Format: opts.Format}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.EdgeCount = d.EdgeCount()

	r.Logger.Info("loaded document",
		"path", path,
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Report = report.Build(d, l)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"extent", l.Extent,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	renderStart := time.Now()
	artifact, hit, err := r.RenderWithCacheInfo(ctx, d, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("exported",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load imports and validates the document at path.
func (r *Runner) Load(ctx context.Context, path string) (*diagram.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, path)
	start := time.Now()
	d, err := uio.ImportDiagram(path)
	hooks.OnDecodeComplete(ctx, path, nodeCount(d), time.Since(start), err)
	return d, err
}

// Read decodes a document from rd. source names it in hooks and logs.
func (r *Runner) Read(ctx context.Context, source string, rd io.Reader) (*diagram.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, source)
	start := time.Now()
	d, err := uio.ReadDiagram(rd)
	hooks.OnDecodeComplete(ctx, source, nodeCount(d), time.Since(start), err)
	return d, err
}

// LayoutWithCacheInfo computes the layout of d and reports whether it was
// served from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) (*layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, d.NodeCount(), d.EdgeCount())
	start := time.Now()

	doc, err := codec.Encode(d)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(cache.Hash(doc), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if rep, err := cache.GetJSON[report.Report](ctx, r.Cache, key); err == nil {
			if l, err := report.Restore(d, rep); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, time.Since(start), true)
				return l, true, nil
			}
			r.Logger.Debug("discarding mismatched cached layout", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	m, err := r.measurer(opts.Config.Layout.Measurer)
	if err != nil {
		return nil, false, err
	}
	l := layout.New(m, opts.Config.Layout.Engine()).Compute(d)

	if err := cache.SetJSON(ctx, r.Cache, key, report.Build(d, l), opts.Config.Cache.TTL.Duration); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "layout", d.NodeCount())
	}

	hooks.OnLayoutComplete(ctx, time.Since(start), false)
	return l, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d *diagram.Diagram, opts Options) (*layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return l, err
}

// RenderWithCacheInfo exports d in opts.Format. JSON and DOT are produced
// directly; SVG goes through Graphviz and is cached by the hash of its DOT
// source.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *diagram.Diagram, l *layout.Layout, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Format)
	start := time.Now()

	var (
		out []byte
		hit bool
		err error
	)
	switch opts.Format {
	case FormatJSON:
		out, err = r.format(d, opts.Config.Output.Indent)
	case FormatDOT:
		out = []byte(r.dot(d, l, opts))
	case FormatSVG:
		out, hit, err = r.svg(ctx, r.dot(d, l, opts), opts)
	}

	hooks.OnExportComplete(ctx, opts.Format, len(out), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return out, hit, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d *diagram.Diagram, l *layout.Layout, opts Options) ([]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, d, l, opts)
	return out, err
}

// Format writes the canonical encoding of d. An empty indent is compact.
func (r *Runner) Format(ctx context.Context, d *diagram.Diagram, indent string) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, FormatJSON)
	start := time.Now()
	out, err := r.format(d, indent)
	hooks.OnExportComplete(ctx, FormatJSON, len(out), time.Since(start), err)
	return out, err
}

func (r *Runner) format(d *diagram.Diagram, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := uio.WriteDiagram(d, &buf, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Runner) dot(d *diagram.Diagram, l *layout.Layout, opts Options) string {
	f := opts.Config.Layout.Font()
	return dot.ToDOT(d, l, dot.Options{FontName: f.Family, FontSize: f.Size})
}

func (r *Runner) svg(ctx context.Context, src string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ExportKey(cache.Hash([]byte(src)), cache.ExportKeyOpts{Format: FormatSVG})
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "export")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "export")
	}

	out, err := dot.RenderSVG(ctx, src)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, out, opts.Config.Cache.TTL.Duration); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "export", len(out))
	}
	return out, false, nil
}

// measurer returns the shared measurer for name, creating it on first use.
func (r *Runner) measurer(name string) (layout.Measurer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.measurers[name]; ok {
		return m, nil
	}

	var base textmeasure.Measurer
	switch name {
	case config.MeasurerOpenType:
		base = textmeasure.NewOpenType()
	case config.MeasurerApprox:
		base = textmeasure.Approx{}
	default:
		return nil, fmt.Errorf("unknown measurer %q", name)
	}
	m, err := textmeasure.NewCached(base, textmeasure.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	if r.measurers == nil {
		r.measurers = make(map[string]layout.Measurer)
	}
	r.measurers[name] = m
	return m, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func nodeCount(d *diagram.Diagram) int {
	if d == nil {
		return 0
	}
	return d.NodeCount()
}
