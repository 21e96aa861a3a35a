package logging

import (
	"context"
	"log/slog"

	"snipelabel/internal/services"
)

// Attribute keys shared across the pipeline so every stage logs the same
// field names.
const (
	FieldRequestID = "request_id"
	FieldItem      = "item"
	FieldStage     = "stage"
)

// WithContext returns a logger annotated with any run identifiers carried on
// the context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if id, ok := services.RequestIDFromContext(ctx); ok {
		logger = logger.With(slog.String(FieldRequestID, id))
	}
	if item, ok := services.ItemFromContext(ctx); ok {
		logger = logger.With(slog.String(FieldItem, item))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		logger = logger.With(slog.String(FieldStage, stage))
	}
	return logger
}
