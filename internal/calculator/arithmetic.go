package calculator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"expression-calculator/internal/expression"
	"expression-calculator/internal/handlers"
	"expression-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// operators maps operation names to expression operators.
var operators = map[string]byte{
	"add":      '+',
	"subtract": '-',
	"multiply": '*',
	"divide":   '/',
}

// Binary handles POST /calculator/{operation} for add, subtract, multiply and
// divide. It applies the same arithmetic and division policy as Evaluate.
func (a *API) Binary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := chi.URLParam(r, "operation")

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	op, ok := operators[opName]
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: opName,
			Message:   "unknown operation",
			Status:    http.StatusNotFound,
			Err:       fmt.Errorf("unknown operation %q", opName),
		}, w)
		return
	}

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: opName,
			Message:   "invalid request body",
			Status:    http.StatusBadRequest,
			Err:       err,
		}, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := expression.Apply(op, req.A, req.B)
	if err == nil {
		err = expression.Finite(result)
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, failure(opName, err), w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
		Display:   expression.Format(result),
	})
}

// Chain handles POST /calculator/chain: runs a sequence of operations on a
// running total, creating a child span for every step. A step dividing by zero
// does not fail on its own; every later operand is finite, so the total stays
// non-finite and the chain fails with a division by zero once all steps ran.
func (a *API) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	// Parent span for the entire chain
	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "chain",
			Message:   "invalid request body",
			Status:    http.StatusBadRequest,
			Err:       err,
		}, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "chain",
			Message:   "no steps provided",
			Status:    http.StatusBadRequest,
			Err:       fmt.Errorf("steps array is empty"),
		}, w)
		return
	}

	if len(req.Steps) > a.limits.MaxBatchSize {
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: "chain",
			Message:   "too many steps",
			Status:    http.StatusRequestEntityTooLarge,
			Err:       fmt.Errorf("%d steps, limit %d", len(req.Steps), a.limits.MaxBatchSize),
		}, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		op, ok := operators[step.Op]
		if !ok {
			err := fmt.Errorf("unknown operation %q at step %d", step.Op, i)
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
				Operation: "chain",
				Message:   err.Error(),
				Status:    http.StatusBadRequest,
				Err:       err,
			}, w)
			return
		}

		prev := running
		next, err := expression.Apply(op, running, step.Value)
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, span, logger, errorCounter, failure("chain", err), w)
			return
		}
		running = next

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.String("input", expression.Format(prev)),
			attribute.String("result", expression.Format(running)),
		))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		results = append(results, ChainResult{
			Op:     step.Op,
			Value:  step.Value,
			Result: expression.Format(running),
		})
	}

	if err := expression.Finite(running); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, failure("chain", err), w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", "chain"))
	opsCounter.Add(ctx, 1, attrs)
	resultGauge.Record(ctx, running, attrs)

	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
		Display: expression.Format(running),
	})
}
