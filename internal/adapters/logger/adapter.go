// Package logger provides adapters for the logging interface.
package logger

import (
	"context"
)

// Logger defines the logging interface used throughout the application.
// External loggers that implement these methods can be wrapped with ZapAdapter.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]any)
	Debug(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, err error, fields map[string]any)
}

// ZapAdapter adapts a Logger to the application's logging interface.
type ZapAdapter struct {
	log Logger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given logger.
func NewZapAdapter(log Logger) *ZapAdapter {
	return &ZapAdapter{log: log}
}

// Info logs an info message.
func (a *ZapAdapter) Info(ctx context.Context, msg string, fields map[string]any) {
	a.log.Info(ctx, msg, fields)
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(ctx context.Context, msg string, fields map[string]any) {
	a.log.Debug(ctx, msg, fields)
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(ctx context.Context, msg string, fields map[string]any) {
	a.log.Warn(ctx, msg, fields)
}

// Error logs an error message.
func (a *ZapAdapter) Error(ctx context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(ctx, msg, err, fields)
}

// scopedLogger attaches a fixed field set to every entry it emits.
type scopedLogger struct {
	log    Logger
	fields map[string]any
}

// WithFields returns a Logger that merges the given fields into every entry.
// Per-call fields win on key collisions. Used to tag entries with the git
// backend that produced them.
func WithFields(log Logger, fields map[string]any) Logger {
	return &scopedLogger{log: log, fields: fields}
}

func (s *scopedLogger) merge(fields map[string]any) map[string]any {
	merged := make(map[string]any, len(s.fields)+len(fields))
	for k, v := range s.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (s *scopedLogger) Info(ctx context.Context, msg string, fields map[string]any) {
	s.log.Info(ctx, msg, s.merge(fields))
}

func (s *scopedLogger) Debug(ctx context.Context, msg string, fields map[string]any) {
	s.log.Debug(ctx, msg, s.merge(fields))
}

func (s *scopedLogger) Warn(ctx context.Context, msg string, fields map[string]any) {
	s.log.Warn(ctx, msg, s.merge(fields))
}

func (s *scopedLogger) Error(ctx context.Context, msg string, err error, fields map[string]any) {
	s.log.Error(ctx, msg, err, s.merge(fields))
}

// Nop is a Logger that discards everything. Useful as a default when a
// component is constructed without a logger.
type Nop struct{}

func (Nop) Info(_ context.Context, _ string, _ map[string]any)           {}
func (Nop) Debug(_ context.Context, _ string, _ map[string]any)          {}
func (Nop) Warn(_ context.Context, _ string, _ map[string]any)           {}
func (Nop) Error(_ context.Context, _ string, _ error, _ map[string]any) {}
