package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// MaxValueLength is the longest URL-like attribute value that is logged
// verbatim. Longer values are cut and suffixed with an ellipsis marker
// carrying the original length.
const MaxValueLength = 256

// urlKeys contains attribute keys whose values are URLs or URL fragments
// and therefore unbounded in practice.
var urlKeys = map[string]bool{
	"url":      true,
	"link":     true,
	"href":     true,
	"query":    true,
	"path":     true,
	"location": true,
	"referer":  true,
	"seed":     true,
}

// TruncateHandler wraps an slog.Handler and shortens oversized URL-like
// attribute values before delegating.
//
// Design decision: We use a handler wrapper rather than truncating at the
// call sites because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay honest; no one has to remember to clip a URL
type TruncateHandler struct {
	// handler is the underlying slog handler that receives the record.
	handler slog.Handler
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewTruncateHandler(handler slog.Handler) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TruncateHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and passes it on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	truncated := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		truncated.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, truncated)
}

// WithAttrs returns a new handler with the given attributes added,
// truncated first.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	truncated := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		truncated[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(truncated)}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name)}
}

// truncateAttr shortens a single attribute, recursively handling groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			out[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if !urlKeys[strings.ToLower(a.Key)] {
		return a
	}
	if a.Value.Kind() != slog.KindString {
		return a
	}

	v := a.Value.String()
	if len(v) <= MaxValueLength {
		return a
	}
	return slog.String(a.Key, fmt.Sprintf("%s...(%d bytes)", v[:MaxValueLength], len(v)))
}

// NewLogger creates a *slog.Logger that writes text records to w through
// a TruncateHandler. Verbose mode enables Debug level; the default level
// keeps only warnings and errors, which is what a long crawl wants.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewTruncateHandler(slog.NewTextHandler(w, opts)))
}
