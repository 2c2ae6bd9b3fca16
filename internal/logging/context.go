package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldProjectID is the standardized key for stored project identifiers.
	FieldProjectID = "project_id"
	// FieldRevision is the standardized key for project revision numbers.
	FieldRevision = "revision"
	// FieldCommand is the standardized key for edit command descriptions.
	FieldCommand = "command"
	// FieldStep is the standardized key for 1-based edit script step numbers.
	FieldStep = "step"
	// FieldOp is the standardized key for edit script op names.
	FieldOp = "op"
	// FieldMedia is the standardized key for media library items.
	FieldMedia = "media"
)

type projectKey struct{}

// WithProject tags ctx with a project identifier.
func WithProject(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, projectKey{}, projectID)
}

// ProjectFromContext returns the project identifier stored by WithProject.
func ProjectFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(projectKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with fields derived from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := ProjectFromContext(ctx); ok {
		return logger.With(String(FieldProjectID, id))
	}
	return logger
}
