package main

import (
	"context"
	"errors"

	"expression-calculator/internal/calculator"
	"expression-calculator/internal/config"
	"expression-calculator/internal/observability"
)

// initTelemetry starts the OTLP exporters enabled in cfg and registers the
// calculator metric instruments. The returned function shuts down every
// provider that was started.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	start := func(enabled bool, init func(context.Context, string) (func(context.Context) error, error)) error {
		if !enabled {
			return nil
		}
		stop, err := init(ctx, cfg.ServiceName)
		if err != nil {
			return err
		}
		shutdowns = append(shutdowns, stop)
		return nil
	}

	if err := start(cfg.TracesEnabled, observability.InitTracing); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}
	if err := start(cfg.MetricsEnabled, observability.InitMetrics); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}
	if err := start(cfg.LogsEnabled, observability.InitLogging); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	return shutdown, nil
}
