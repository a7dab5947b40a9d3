// Command gcam runs a scenario from a YAML definition and writes the model
// results to CSV and, optionally, to a SQLite store.
//
// Flags default to environment variables so the command drops into scripted
// pipelines without long invocations:
//
//	GCAM_SCENARIO    scenario YAML path (flag -scenario)
//	GCAM_OUTPUT_CSV  CSV result path (flag -csv)
//	GCAM_OUTPUT_DB   SQLite result path, empty disables (flag -db)
//	GCAM_METRICS     enable OpenTelemetry metrics (flag -metrics)
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/anantjoshi01/gcam-core/internal/observability"
	"github.com/anantjoshi01/gcam-core/internal/output"
	"github.com/anantjoshi01/gcam-core/scenario"
)

func main() {
	scenarioPath := flag.String("scenario", env.Str("GCAM_SCENARIO", "scenario.yaml"), "scenario YAML file")
	csvPath := flag.String("csv", env.Str("GCAM_OUTPUT_CSV", "results.csv"), "CSV output file")
	dbPath := flag.String("db", env.Str("GCAM_OUTPUT_DB", ""), "SQLite output file, empty disables")
	metrics := flag.Bool("metrics", env.Bool("GCAM_METRICS"), "record OpenTelemetry metrics")
	verbose := flag.Bool("verbose", env.Bool("GCAM_VERBOSE"), "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*scenarioPath, *csvPath, *dbPath, *metrics); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run - Executes one model run end to end.
//
// It returns:
//   - err is a standard error if loading, solving or writing results fails
func run(scenarioPath, csvPath, dbPath string, metrics bool) (err error) {
	config, err := scenario.FromFile(scenarioPath)
	if err != nil {
		return
	}

	s, err := scenario.New(config)
	if err != nil {
		return
	}

	if metrics {
		s.SetMetricsRecorder(observability.NewMetricsRecorder())
	}

	runID := output.NewRunID()
	slog.Info("starting run", "run_id", runID, "scenario", s.Name())

	converged := s.Run(context.Background())
	if !converged {
		slog.Warn("run finished with unsolved periods", "run_id", runID)
	}

	records := output.Collect(runID, s)

	if err = output.WriteCSV(csvPath, records); err != nil {
		return
	}
	slog.Info("wrote results", "path", csvPath, "records", len(records))

	if dbPath != "" {
		var store *output.SQLiteStore
		if store, err = output.NewSQLiteStore(dbPath); err != nil {
			return
		}
		defer func(store *output.SQLiteStore) { _ = store.Close() }(store)

		if err = store.Write(records); err != nil {
			return
		}
		slog.Info("stored results", "path", dbPath, "run_id", runID)
	}

	return
}
