package output

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anantjoshi01/gcam-core/scenario"
)

const testScenarioYAML = `
name: output-test
years: [1990, 2005]
regions:
  - name: USA
    demands:
      - good: wind
        quantities: [20, 40]
    resources:
      - name: wind
        type: renewable
        market: USA
        prices: [1.0, 1.0]
        subresources:
          - name: plains
            max_annual: 100
            base_price: 4.0
            price_elasticity: 1.0
            variance: 0.3
            capacity_factor: 0.35
`

// newFinishedRun - Builds and runs the test scenario.
func newFinishedRun(t *testing.T) *scenario.Scenario {
	config, err := scenario.FromYAML([]byte(testScenarioYAML))
	assert.NoError(t, err, "parses scenario")

	s, err := scenario.New(config)
	assert.NoError(t, err, "builds scenario")

	s.Run(context.Background())
	return s
}

func TestNewRunID(t *testing.T) {
	t.Run("run ids are short and unique", func(t *testing.T) {
		// Execute
		first := NewRunID()
		second := NewRunID()

		// Check
		assert.True(t, strings.HasPrefix(first, "run-"), "run prefix")
		assert.Len(t, first, 12, "short id")
		assert.NotEqual(t, first, second, "ids differ")
	})
}

func TestCollect(t *testing.T) {
	t.Run("collects one record per resource, variable and period", func(t *testing.T) {
		// Prepare
		s := newFinishedRun(t)

		// Execute
		records := Collect("run-test", s)

		// Check
		// One resource, four variables, two periods.
		assert.Len(t, records, 8, "record count")
		assert.Equal(t, "output-test", records[0].Scenario, "scenario name carried")
		assert.Equal(t, 1990, records[0].Year, "year resolved from period")

		var production []Record
		for _, record := range records {
			if record.Variable == "production" {
				production = append(production, record)
			}
		}
		assert.Len(t, production, 2, "production per period")
		assert.Greater(t, production[1].Value, 0.0, "solved period produced")
	})
}

func TestWriteCSV(t *testing.T) {
	t.Run("writes header and rows", func(t *testing.T) {
		// Prepare
		s := newFinishedRun(t)
		records := Collect("run-test", s)
		path := filepath.Join(t.TempDir(), "results.csv")

		// Execute
		err := WriteCSV(path, records)

		// Check
		assert.NoError(t, err, "writes csv")

		f, err := os.Open(path)
		assert.NoError(t, err, "opens csv")
		defer func(f *os.File) { _ = f.Close() }(f)

		rows, err := csv.NewReader(f).ReadAll()
		assert.NoError(t, err, "reads csv")
		assert.Len(t, rows, len(records)+1, "header plus one row per record")
		assert.Equal(t, "run_id", rows[0][0], "header written")
		assert.Equal(t, "run-test", rows[1][0], "run id in rows")
	})
}

func TestSQLiteStore(t *testing.T) {
	t.Run("writes and reads back records", func(t *testing.T) {
		// Prepare
		s := newFinishedRun(t)
		records := Collect("run-db", s)

		store, err := NewSQLiteStore(":memory:")
		assert.NoError(t, err, "opens store")
		defer func() { _ = store.Close() }()

		// Execute
		err = store.Write(records)

		// Check
		assert.NoError(t, err, "writes records")

		count, err := store.RecordCount("run-db")
		assert.NoError(t, err, "counts records")
		assert.Equal(t, len(records), count, "all records stored")

		value, err := store.Value("run-db", "USA", "production", "wind", 1)
		assert.NoError(t, err, "reads a value")
		assert.InDelta(t, 40.0, value, 0.5, "stored production matches cleared demand")
	})

	t.Run("rewriting a run replaces its rows", func(t *testing.T) {
		// Prepare
		s := newFinishedRun(t)
		records := Collect("run-redo", s)
		store, err := NewSQLiteStore(":memory:")
		assert.NoError(t, err, "opens store")
		defer func() { _ = store.Close() }()
		assert.NoError(t, store.Write(records), "first write")

		// Execute
		err = store.Write(records)

		// Check
		assert.NoError(t, err, "second write succeeds")
		count, err := store.RecordCount("run-redo")
		assert.NoError(t, err, "counts records")
		assert.Equal(t, len(records), count, "rows replaced, not duplicated")
	})

	t.Run("write after close fails", func(t *testing.T) {
		// Prepare
		store, err := NewSQLiteStore(":memory:")
		assert.NoError(t, err, "opens store")
		assert.NoError(t, store.Close(), "closes store")

		// Execute
		err = store.Write([]Record{{RunID: "run-x"}})

		// Check
		assert.Error(t, err, "closed store rejects writes")
	})
}
