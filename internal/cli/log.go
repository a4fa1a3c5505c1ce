package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlkit/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Validated 3 documents (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks reports pipeline and cache events at debug level. The logger
// attached to the event context wins over the fallback.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)

func (h *logHooks) log(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return h.logger
}

func (h *logHooks) OnDecodeStart(ctx context.Context, source string) {
	h.log(ctx).Debug("decoding", "source", source)
}

func (h *logHooks) OnDecodeComplete(ctx context.Context, source string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.log(ctx).Debug("decode failed", "source", source, "error", err)
		return
	}
	h.log(ctx).Debug("decoded", "source", source, "nodes", nodeCount, "duration", d)
}

func (h *logHooks) OnLayoutStart(ctx context.Context, nodeCount, edgeCount int) {
	h.log(ctx).Debug("layout", "nodes", nodeCount, "edges", edgeCount)
}

func (h *logHooks) OnLayoutComplete(ctx context.Context, d time.Duration, cached bool) {
	h.log(ctx).Debug("layout done", "cached", cached, "duration", d)
}

func (h *logHooks) OnExportStart(ctx context.Context, format string) {
	h.log(ctx).Debug("export", "format", format)
}

func (h *logHooks) OnExportComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.log(ctx).Debug("export failed", "format", format, "error", err)
		return
	}
	h.log(ctx).Debug("export done", "format", format, "bytes", size, "duration", d)
}

func (h *logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.log(ctx).Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.log(ctx).Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.log(ctx).Debug("cache set", "type", keyType, "size", size)
}
