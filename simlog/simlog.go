// Package simlog wraps log/slog with a handler that writes a fixed
// "timestamp level message attrs..." line to an optional log file and
// mirrors anything at Warn or above to stderr, the way a terminal
// debugger needs to keep a readable trail without spamming the console
// during normal stepping.
package simlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler that formats records as plain text lines.
type Handler struct {
	out   io.Writer
	level slog.Leveler
	attrs []slog.Attr // accumulated via WithAttrs, printed ahead of each record's own
	mu    *sync.Mutex
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.level != nil {
		min = h.level.Level()
	}
	return level >= min
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{out: h.out, level: h.level, attrs: merged, mu: h.mu}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	// Groups are not rendered distinctly in this flat text format; a
	// grouped attr still prints as "key=value" like any other.
	return h
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	parts := []string{formattedTime, level, r.Message}
	for _, a := range h.attrs {
		parts = append(parts, a.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.String())
		return true
	})
	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write([]byte(line))
	}
	if r.Level >= slog.LevelWarn {
		_, err = os.Stderr.Write([]byte(line))
	}
	return err
}

// NewHandler builds a Handler writing to file (which may be nil, meaning
// "no log file", only stderr mirroring of warnings and above). Only
// opts.Level is used, as the minimum level; AddSource and ReplaceAttr
// are ignored.
func NewHandler(file io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler
	if opts != nil {
		level = opts.Level
	}
	return &Handler{
		out:   file,
		level: level,
		mu:    &sync.Mutex{},
	}
}
