package observability

import (
	"context"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordTableCollision does nothing.
func (NoopMetrics) RecordTableCollision(_ context.Context, _ string) {}

// RecordTableResize does nothing.
func (NoopMetrics) RecordTableResize(_ context.Context, _ string) {}

// RecordSolverIteration does nothing.
func (NoopMetrics) RecordSolverIteration(_ context.Context, _ string) {}

// RecordMarketCleared does nothing.
func (NoopMetrics) RecordMarketCleared(_ context.Context, _ string, _ int, _ bool) {}
