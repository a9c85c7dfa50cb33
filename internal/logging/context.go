package logging

import (
	"context"
	"log/slog"

	"avreap/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldJobID is the standardized structured logging key for job record identifiers.
	FieldJobID = "job_id"
	// FieldStage is the standardized structured logging key for controller phase names.
	FieldStage = "stage"
	// FieldCorrelationID is the standardized structured logging key for scan-cycle correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldEventType tags a log line with a stable, greppable event category.
	FieldEventType = "event_type"
	// FieldErrorHint carries a short human-readable next step for an error or warning.
	FieldErrorHint = "error_hint"
	// FieldErrorCode carries a stable machine-readable error classification.
	FieldErrorCode = "error_code"
	// FieldErrorDetailPath points at a sidecar or log file with full error detail.
	FieldErrorDetailPath = "error_detail_path"
	// FieldDecisionType tags a classifier/policy decision log with the kind of decision made.
	FieldDecisionType = "decision_type"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.JobIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldJobID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
