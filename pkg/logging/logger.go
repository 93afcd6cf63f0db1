// Package logging provides structured logging for gitai-core components.
//
// It wraps the standard library's log/slog rather than adopting a
// third-party logging library: a thin per-component wrapper around a
// shared *slog.Logger, writing to stderr. The gitaicore command logs
// through it; the internal packages do not log.
package logging

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Logger wraps a *slog.Logger scoped to one component.
//
// Thread Safety: Logger is safe for concurrent use; slog.Logger already is.
type Logger struct {
	inner     *slog.Logger
	component string
}

// Default returns the process-wide default logger, writing leveled text to
// stderr. It is created once and reused.
func Default() *Logger {
	defaultOnce.Do(func() {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
		defaultLogger = &Logger{inner: slog.New(h)}
	})
	return defaultLogger
}

// New creates a Logger writing leveled text to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// With returns a Logger scoped to the named component. Every log line it
// emits carries a "component" attribute.
func (l *Logger) With(component string) *Logger {
	return &Logger{inner: l.inner.With(slog.String("component", component)), component: component}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// DebugCtx, InfoCtx, WarnCtx, ErrorCtx propagate context for handlers that
// attach request-scoped attributes (e.g. trace IDs) via slog's context-aware
// API.
func (l *Logger) DebugCtx(ctx context.Context, msg string, args ...any) {
	l.inner.DebugContext(ctx, msg, args...)
}
func (l *Logger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.inner.InfoContext(ctx, msg, args...)
}
func (l *Logger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.inner.WarnContext(ctx, msg, args...)
}
func (l *Logger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.inner.ErrorContext(ctx, msg, args...)
}
