package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"expression-calculator/internal/handlers"
)

// Failure describes a failed request for RecordError.
type Failure struct {
	// Operation names the endpoint or step that failed.
	Operation string
	// Message is the client-facing error text.
	Message string
	// Kind and Position are reported for expression errors only.
	Kind     string
	Position int
	Status   int
	Err      error
}

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, f Failure, w http.ResponseWriter) {
	span.RecordError(f.Err)
	span.SetStatus(codes.Error, f.Message)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", f.Operation),
		attribute.String("kind", f.Kind),
	))

	logger.Error(f.Message,
		zap.String("operation", f.Operation),
		zap.String("kind", f.Kind),
		zap.Int("position", f.Position),
		zap.Error(f.Err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, f.Status, handlers.ErrorBody{
		Error:    f.Message,
		Kind:     f.Kind,
		Position: f.Position,
	})
}
