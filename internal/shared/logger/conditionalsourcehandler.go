package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type conditionalSourceHandler struct {
	inner       slog.Handler
	sourceLevel map[slog.Level]bool
}

// NewConditionalSourceHandler wraps a handler so that source location is
// attached only at the given levels. Routine info lines stay compact while
// warnings and errors keep the file:line needed to chase them down.
//
//	handler := NewConditionalSourceHandler(
//	    tint.NewHandler(os.Stdout, opts),
//	    slog.LevelWarn, slog.LevelError,
//	)
//
// The wrapped handler must be built with AddSource disabled, otherwise every
// record gets a source attribute pointing at this wrapper.
func NewConditionalSourceHandler(inner slog.Handler, levels ...slog.Level) slog.Handler {
	sourceLevel := make(map[slog.Level]bool, len(levels))
	for _, l := range levels {
		sourceLevel[l] = true
	}
	return &conditionalSourceHandler{inner: inner, sourceLevel: sourceLevel}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.sourceLevel[r.Level] {
		r.AddAttrs(slog.Any(slog.SourceKey, callerSource()))
	}
	return h.inner.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{inner: h.inner.WithAttrs(attrs), sourceLevel: h.sourceLevel}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{inner: h.inner.WithGroup(name), sourceLevel: h.sourceLevel}
}

// callerSource resolves the frame of the logging call site, skipping this
// function, Handle, and the slog internals above it.
func callerSource() *slog.Source {
	var pcs [1]uintptr
	runtime.Callers(4, pcs[:])
	f, _ := runtime.CallersFrames(pcs[:]).Next()
	return &slog.Source{
		Function: f.Function,
		File:     f.File,
		Line:     f.Line,
	}
}
