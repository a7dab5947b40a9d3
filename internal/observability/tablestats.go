package observability

import (
	"context"

	"github.com/anantjoshi01/gcam-core/hashmap"
)

// tableStats adapts a MetricsRecorder to the hashmap.StatsRecorder hook.
type tableStats struct {
	table   string
	metrics MetricsRecorder
}

// Compile-time interface check.
var _ hashmap.StatsRecorder = tableStats{}

// TableStats returns a hashmap.StatsRecorder that forwards the table's
// tuning events (collisions and resizes) to the given MetricsRecorder under
// the given table name.
func TableStats(table string, metrics MetricsRecorder) hashmap.StatsRecorder {
	return tableStats{table: table, metrics: metrics}
}

// RecordCollision forwards a chain collision.
func (t tableStats) RecordCollision() {
	t.metrics.RecordTableCollision(context.Background(), t.table)
}

// RecordResize forwards a growth and rehash.
func (t tableStats) RecordResize() {
	t.metrics.RecordTableResize(context.Background(), t.table)
}
