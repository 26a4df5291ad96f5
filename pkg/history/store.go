// Package history persists run results in SQLite so later runs
// can be compared with earlier ones.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"digital.vasic.corespec/pkg/scenario"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// ErrNoRuns is returned by Latest when nothing was recorded for
// the requested suite.
var ErrNoRuns = errors.New("no recorded runs")

// Store provides durable storage for run results. It uses
// SQLite in WAL mode.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded run.
type Run struct {
	ID          int64
	RunID       string
	Suite       string
	RecordedAt  time.Time
	Fingerprint string
	Result      *scenario.RunResult
}

// Open creates or opens a SQLite database at path and applies
// the schema. It is safe to call on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores result under runID and suite and returns the
// stored run.
func (s *Store) Record(
	ctx context.Context,
	runID, suite string,
	result *scenario.RunResult,
) (*Run, error) {
	if runID == "" {
		return nil, errors.New("run id cannot be empty")
	}
	if result == nil {
		return nil, errors.New("result cannot be nil")
	}

	fingerprint, err := Fingerprint(result)
	if err != nil {
		return nil, err
	}
	data, err := canonicalJSON(result)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, suite, recorded_at,
			passed, failed, errored, skipped,
			fingerprint, result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, suite, at.Format(time.RFC3339Nano),
		result.Passed, result.Failed, result.Errored, result.Skipped,
		fingerprint, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("record run %s: %w", runID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("record run %s: %w", runID, err)
	}

	return &Run{
		ID:          id,
		RunID:       runID,
		Suite:       suite,
		RecordedAt:  at,
		Fingerprint: fingerprint,
		Result:      result,
	}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	_, err := db.Exec(
		fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion),
	)
	if err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
