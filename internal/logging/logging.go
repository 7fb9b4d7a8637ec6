// Package logging configures the process-wide slog logger for regctl.
// Library packages under pkg/ do not log; they return errors that carry
// everything a caller needs to log them (see Failure).
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

var level = new(slog.LevelVar)

// Init configures the global slog logger to write to stderr.
// levelStr: "debug", "info", "warn", "error" (default: "info").
// format: "text" or "json" (default: "text").
func Init(levelStr, format string) {
	InitWriter(os.Stderr, levelStr, format)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, levelStr, format string) {
	level.Set(ParseLevel(levelStr))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// For returns a logger tagged with the given component name. It resolves
// slog.Default() on every call, so package-level loggers follow Init and
// CaptureForTest.
func For(component string) *slog.Logger {
	return slog.New(&dynamicHandler{component: component})
}

// SetLevel changes the log level at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Failure logs err at a level matching its severity: soft absence at debug,
// everything else at error. Registry errors contribute op, name, kind and
// status attributes.
func Failure(logger *slog.Logger, msg string, err error) {
	if err == nil {
		return
	}
	attrs := []any{"error", err}
	var e *types.Error
	if errors.As(err, &e) {
		attrs = append(attrs, "op", e.Op, "name", e.Name, "kind", e.Kind.String())
		if e.Status != types.StatusSuccess {
			attrs = append(attrs, "status", e.Status.String())
		}
	}
	if types.IsNotFound(err) {
		logger.Debug(msg, attrs...)
		return
	}
	logger.Error(msg, attrs...)
}

// dynamicHandler delegates to slog.Default().Handler(), adding a component
// attribute to every record.
type dynamicHandler struct {
	component string
	attrs     []slog.Attr
}

func (h *dynamicHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, l)
}

func (h *dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("component", h.component))
	r.AddAttrs(h.attrs...)
	return slog.Default().Handler().Handle(ctx, r)
}

func (h *dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dynamicHandler{
		component: h.component,
		attrs:     append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *dynamicHandler) WithGroup(string) slog.Handler {
	return h
}
