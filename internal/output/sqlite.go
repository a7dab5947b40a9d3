package output

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists result records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	closed bool
}

// NewSQLiteStore - Opens (or creates) a result store. The path should be a
// file path (e.g., "./results.db") or ":memory:" for testing.
//
// It returns:
//   - store is a pointer to the open store
//   - err is a standard error if the database can not be opened or prepared
func NewSQLiteStore(path string) (store *SQLiteStore, err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		err = fmt.Errorf("open database: %w", err)
		return
	}

	// Enable WAL mode for better concurrent read performance
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		err = fmt.Errorf("enable WAL mode: %w", err)
		return
	}

	if _, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			run_id   TEXT NOT NULL,
			scenario TEXT NOT NULL,
			region   TEXT NOT NULL,
			variable TEXT NOT NULL,
			sector   TEXT NOT NULL,
			unit     TEXT NOT NULL,
			period   INTEGER NOT NULL,
			year     INTEGER NOT NULL,
			value    REAL NOT NULL,
			PRIMARY KEY (run_id, region, variable, sector, period)
		)
	`); err != nil {
		_ = db.Close()
		err = fmt.Errorf("create table: %w", err)
		return
	}

	if _, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_results_run_id
		ON results(run_id)
	`); err != nil {
		_ = db.Close()
		err = fmt.Errorf("create index: %w", err)
		return
	}

	store = &SQLiteStore{db: db}
	return
}

// Write - Stores the records in one transaction. Re-running a run ID
// replaces its earlier rows.
//
// It returns:
//   - err is a standard error if the transaction fails
func (S *SQLiteStore) Write(records []Record) (err error) {
	if S.closed {
		err = fmt.Errorf("store is closed")
		return
	}

	tx, err := S.db.Begin()
	if err != nil {
		err = fmt.Errorf("begin transaction: %w", err)
		return
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO results
			(run_id, scenario, region, variable, sector, unit, period, year, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		err = fmt.Errorf("prepare insert: %w", err)
		return
	}
	defer func(stmt *sql.Stmt) { _ = stmt.Close() }(stmt)

	for _, record := range records {
		if _, err = stmt.Exec(record.RunID, record.Scenario, record.Region, record.Variable,
			record.Sector, record.Unit, record.Period, record.Year, record.Value); err != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("insert record: %w", err)
			return
		}
	}

	err = tx.Commit()
	return
}

// Value - Reads back one stored value.
//
// It returns:
//   - value is the stored value
//   - err is sql.ErrNoRows wrapped if the row does not exist
func (S *SQLiteStore) Value(runID, region, variable, sector string, period int) (value float64, err error) {
	err = S.db.QueryRow(`
		SELECT value FROM results
		WHERE run_id = ? AND region = ? AND variable = ? AND sector = ? AND period = ?
	`, runID, region, variable, sector, period).Scan(&value)
	if err != nil {
		err = fmt.Errorf("read value: %w", err)
	}
	return
}

// RecordCount - Returns the number of rows stored for a run.
func (S *SQLiteStore) RecordCount(runID string) (count int, err error) {
	err = S.db.QueryRow(`SELECT COUNT(*) FROM results WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		err = fmt.Errorf("count records: %w", err)
	}
	return
}

// Close - Closes the store. Further writes fail.
func (S *SQLiteStore) Close() error {
	if S.closed {
		return nil
	}
	S.closed = true
	return S.db.Close()
}
