package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ingest_runs (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id              TEXT NOT NULL UNIQUE,
			symbol              TEXT NOT NULL,
			start_date          TEXT,
			end_date            TEXT,
			fetch_status        TEXT,
			row_count           INTEGER,
			fetch_error         TEXT,
			instructions_status TEXT,
			started_at          INTEGER NOT NULL,
			finished_at         INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON ingest_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO ingest_runs
		(run_id, symbol, start_date, end_date, fetch_status, row_count, fetch_error,
		 instructions_status, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		evt.RunID, evt.Symbol, evt.StartDate, evt.EndDate,
		evt.FetchStatus, evt.Rows, evt.FetchError, evt.InstructionsStatus,
		evt.StartedAt.Unix(), evt.FinishedAt.Unix(),
	)
	return err
}

// LastRun returns the most recently started run, or nil when none exist.
func (r *SQLiteRecorder) LastRun() (*RunEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		evt               RunEvent
		started, finished int64
	)
	err := r.db.QueryRow(`SELECT run_id, symbol, start_date, end_date, fetch_status, row_count,
		fetch_error, instructions_status, started_at, finished_at
		FROM ingest_runs ORDER BY started_at DESC, id DESC LIMIT 1`).Scan(
		&evt.RunID, &evt.Symbol, &evt.StartDate, &evt.EndDate, &evt.FetchStatus, &evt.Rows,
		&evt.FetchError, &evt.InstructionsStatus, &started, &finished,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	evt.StartedAt = time.Unix(started, 0)
	evt.FinishedAt = time.Unix(finished, 0)
	return &evt, nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
