// Package logging configures the process-wide structured logger and
// scrubs API credentials from log output.
package logging

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// secretPatterns match credential material that must never reach logs.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-_]+`),
	regexp.MustCompile(`sk-[a-zA-Z0-9\-_]{20,}`),
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	regexp.MustCompile(`(?i)(api[_-]?key|authorization)["':\s=]+[a-zA-Z0-9\-._~+/]{8,}`),
}

const redacted = "[REDACTED]"

// Scrub replaces credential material in s with a redaction marker.
func Scrub(s string) string {
	for _, p := range secretPatterns {
		s = p.ReplaceAllString(s, redacted)
	}
	return s
}

// RedactHandler wraps a slog.Handler and scrubs string attribute values
// and messages before they are emitted.
type RedactHandler struct {
	inner slog.Handler
}

// NewRedactHandler wraps handler with credential scrubbing.
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	return &RedactHandler{inner: handler}
}

func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, Scrub(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(scrubAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		scrubbed[i] = scrubAttr(a)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(scrubbed)}
}

func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name)}
}

func scrubAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, Scrub(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		scrubbed := make([]any, 0, len(group))
		for _, g := range group {
			scrubbed = append(scrubbed, scrubAttr(g))
		}
		return slog.Group(a.Key, scrubbed...)
	default:
		return a
	}
}

// Verify interface
var _ slog.Handler = (*RedactHandler)(nil)

// New builds a logger writing to w with the given level and format.
// Format is "json" or "text"; unknown values fall back to text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(NewRedactHandler(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
