package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"expression-calculator/internal/expression"
	"expression-calculator/internal/handlers"
	"expression-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// errTooLong is reported when an expression exceeds Limits.MaxExpressionLength.
var errTooLong = errors.New("expression too long")

// Limits bounds the size of calculator requests.
type Limits struct {
	MaxExpressionLength int
	MaxBatchSize        int
}

// API serves the calculator endpoints.
type API struct {
	limits Limits
}

func NewAPI(limits Limits) *API {
	return &API{limits: limits}
}

// statusFor maps an evaluation error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errTooLong):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, expression.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// failure describes an evaluation error for observability.RecordError.
func failure(opName string, err error) observability.Failure {
	f := observability.Failure{
		Operation: opName,
		Message:   err.Error(),
		Status:    statusFor(err),
		Err:       err,
	}
	var e *expression.Error
	if errors.As(err, &e) {
		f.Message = e.Msg
		f.Kind = e.Kind.String()
		f.Position = e.Col
	}
	return f
}

// evaluate runs one expression inside its own child span and records the
// evaluation metrics.
func (a *API) evaluate(ctx context.Context, opName, src string) (float64, error) {
	_, span := tracer.Start(ctx, "calculator.expression.evaluate",
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.Int("calculator.expression.length", len(src)),
		),
	)
	defer span.End()

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	lengthHistogram.Record(ctx, int64(len(src)), attrs)

	if len(src) > a.limits.MaxExpressionLength {
		err := fmt.Errorf("%w: %d bytes, limit %d", errTooLong, len(src), a.limits.MaxExpressionLength)
		span.RecordError(err)
		span.SetStatus(codes.Error, errTooLong.Error())
		return 0, err
	}

	start := time.Now()
	result, err := expression.Evaluate(src)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("calculator.error.kind", expression.KindOf(err).String()))
		return 0, err
	}

	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("evaluation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	return result, nil
}

// Evaluate handles POST /calculator/evaluate.
func (a *API) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "evaluate",
			Message:   "invalid request body",
			Status:    http.StatusBadRequest,
			Err:       err,
		}, w)
		return
	}

	result, err := a.evaluate(ctx, "evaluate", req.Expression)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, failure("evaluate", err), w)
		return
	}

	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("expression", req.Expression),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Expression: req.Expression,
		Result:     expression.Round(result),
		Display:    expression.Format(result),
	})
}

// Batch handles POST /calculator/batch. Each expression is evaluated in its
// own child span; a failing item does not fail the request.
func (a *API) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.batch",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "batch",
			Message:   "invalid request body",
			Status:    http.StatusBadRequest,
			Err:       err,
		}, w)
		return
	}

	if len(req.Expressions) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "batch",
			Message:   "no expressions provided",
			Status:    http.StatusBadRequest,
			Err:       errors.New("expressions array is empty"),
		}, w)
		return
	}

	if len(req.Expressions) > a.limits.MaxBatchSize {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "batch",
			Message:   "too many expressions",
			Status:    http.StatusRequestEntityTooLarge,
			Err:       fmt.Errorf("%d expressions, limit %d", len(req.Expressions), a.limits.MaxBatchSize),
		}, w)
		return
	}

	span.SetAttributes(attribute.Int("batch.size", len(req.Expressions)))

	resp := BatchResponse{Results: make([]BatchItem, 0, len(req.Expressions))}
	for i, src := range req.Expressions {
		item := BatchItem{Expression: src}

		result, err := a.evaluate(ctx, "batch", src)
		if err != nil {
			f := failure("batch", err)
			item.Error = f.Message
			item.Kind = f.Kind
			item.Position = f.Position
			resp.Failed++

			errorCounter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("operation", "batch"),
				attribute.String("kind", f.Kind),
			))
			logger.Warn("batch item failed",
				zap.Int("index", i),
				zap.String("expression", src),
				zap.Error(err),
				zap.String("request_id", requestID),
			)
		} else {
			rounded := expression.Round(result)
			item.Result = &rounded
			item.Display = expression.Format(result)
			resp.Succeeded++
		}

		resp.Results = append(resp.Results, item)
	}

	span.AddEvent("batch.complete", trace.WithAttributes(
		attribute.Int("succeeded", resp.Succeeded),
		attribute.Int("failed", resp.Failed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("batch evaluated",
		zap.Int("expressions", len(req.Expressions)),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}
