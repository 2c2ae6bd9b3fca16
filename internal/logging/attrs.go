package logging

import (
	"context"
	"log/slog"
)

type Attr = slog.Attr

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Step tags a record with a 1-based edit script step and its op name.
func Step(number int, op string) Attr {
	return slog.Group(FieldStep, slog.Int("number", number), slog.String(FieldOp, op))
}

// Command tags a record with an edit command description.
func Command(description string) Attr { return slog.String(FieldCommand, description) }

// Revision tags a record with a stored project revision number.
func Revision(number int) Attr { return slog.Int(FieldRevision, number) }

// MediaItem describes an imported library item. Durations are in frames.
func MediaItem(id, path, kind string, frames int64) Attr {
	return slog.Group(FieldMedia,
		slog.String("id", id),
		slog.String("path", path),
		slog.String("kind", kind),
		slog.Int64("frames", frames),
	)
}

// StepCounts summarizes a finished script run.
func StepCounts(applied, undone, redone, skipped int) Attr {
	return slog.Group("steps",
		slog.Int("applied", applied),
		slog.Int("undone", undone),
		slog.Int("redone", redone),
		slog.Int("skipped", skipped),
	)
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
