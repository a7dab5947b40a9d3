// Package observability provides metrics for the model core: hash table
// tuning stats (collisions and resizes) and market solver behavior.
//
// Metrics go through OpenTelemetry. Use NewMetricsRecorder() for OTel
// metrics or NoopMetrics{} when disabled.
package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records model metrics.
type MetricsRecorder interface {
	// RecordTableCollision records one hash table chain collision.
	RecordTableCollision(ctx context.Context, table string)

	// RecordTableResize records one hash table growth and rehash.
	RecordTableResize(ctx context.Context, table string)

	// RecordSolverIteration records one price adjustment step for a market.
	RecordSolverIteration(ctx context.Context, market string)

	// RecordMarketCleared records a market reaching (or giving up on)
	// equilibrium for a period.
	RecordMarketCleared(ctx context.Context, market string, period int, converged bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	tableCollisions  metric.Int64Counter
	tableResizes     metric.Int64Counter
	solverIterations metric.Int64Counter
	marketsCleared   metric.Int64Counter
}

// newOtelMetrics creates a new OTel metrics instance bound to the current
// global meter provider. Instruments with the same name and scope are
// coalesced by the SDK, so repeated construction is cheap.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("gcam-core")

	tableCollisions, err := meter.Int64Counter("gcam.hashmap.collisions",
		metric.WithDescription("Number of hash table chain collisions"),
	)
	if err != nil {
		return nil, err
	}

	tableResizes, err := meter.Int64Counter("gcam.hashmap.resizes",
		metric.WithDescription("Number of hash table growths"),
	)
	if err != nil {
		return nil, err
	}

	solverIterations, err := meter.Int64Counter("gcam.solver.iterations",
		metric.WithDescription("Number of price adjustment iterations"),
	)
	if err != nil {
		return nil, err
	}

	marketsCleared, err := meter.Int64Counter("gcam.solver.markets_cleared",
		metric.WithDescription("Number of market clearing attempts completed"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		tableCollisions:  tableCollisions,
		tableResizes:     tableResizes,
		solverIterations: solverIterations,
		marketsCleared:   marketsCleared,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function.
func NewMetricsRecorder() MetricsRecorder {
	m, err := newOtelMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordTableCollision records one hash table chain collision.
func (m *otelMetrics) RecordTableCollision(ctx context.Context, table string) {
	m.tableCollisions.Add(ctx, 1, metric.WithAttributes(attribute.String("table", table)))
}

// RecordTableResize records one hash table growth and rehash.
func (m *otelMetrics) RecordTableResize(ctx context.Context, table string) {
	m.tableResizes.Add(ctx, 1, metric.WithAttributes(attribute.String("table", table)))
}

// RecordSolverIteration records one price adjustment step for a market.
func (m *otelMetrics) RecordSolverIteration(ctx context.Context, market string) {
	m.solverIterations.Add(ctx, 1, metric.WithAttributes(attribute.String("market", market)))
}

// RecordMarketCleared records a market clearing attempt for a period.
func (m *otelMetrics) RecordMarketCleared(ctx context.Context, market string, period int, converged bool) {
	m.marketsCleared.Add(ctx, 1, metric.WithAttributes(
		attribute.String("market", market),
		attribute.Int("period", period),
		attribute.Bool("converged", converged),
	))
}
