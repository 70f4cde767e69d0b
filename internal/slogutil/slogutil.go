// Package slogutil configures log/slog for the progress CLI: level parsing,
// optional rotated file output, and attributes carried on a context.
package slogutil

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/misterram/mediacore/internal/config"
)

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Setup builds a text logger writing to console. When logConfig.File is set
// it also writes to that file, rotated with lumberjack.
func Setup(logConfig config.LogConfig, console io.Writer) *slog.Logger {
	writer := console
	if logConfig.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   logConfig.File,
			MaxSize:    logConfig.MaxSize,    // MB
			MaxBackups: logConfig.MaxBackups, // number of old files
			MaxAge:     logConfig.MaxAge,     // days
			Compress:   logConfig.Compress,
		}
		writer = io.MultiWriter(console, fileWriter)
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(logConfig.Level),
	})

	return slog.New(WrapHandler(handler))
}

type dataKey struct{}

// With returns a context carrying the given key-value pairs. Loggers built by
// Setup add them to every record logged with that context.
func With(ctx context.Context, kvargs ...any) context.Context {
	if len(kvargs) == 0 {
		return ctx
	}

	d := Attrs(ctx)
	data := make(map[string]slog.Attr, len(d)+len(kvargs)/2)
	for _, a := range d {
		data[a.Key] = a
	}

	var r slog.Record
	r.Add(kvargs...)
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a
		return true
	})

	return context.WithValue(ctx, dataKey{}, data)
}

// Attrs returns the attributes carried by ctx.
func Attrs(ctx context.Context) []slog.Attr {
	d, ok := ctx.Value(dataKey{}).(map[string]slog.Attr)
	if !ok {
		return nil
	}

	attrs := make([]slog.Attr, 0, len(d))
	for _, k := range slices.Sorted(maps.Keys(d)) {
		attrs = append(attrs, d[k])
	}
	return attrs
}

// Handler adds context attributes to each record.
type Handler struct {
	handler slog.Handler
}

// WrapHandler wraps h so that context attributes are logged.
func WrapHandler(h slog.Handler) Handler {
	return Handler{handler: h}
}

func (h Handler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := Attrs(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{handler: h.handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{handler: h.handler.WithGroup(name)}
}
