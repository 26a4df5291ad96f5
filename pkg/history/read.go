package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

const selectRun = `
	SELECT id, run_id, suite, recorded_at, fingerprint, result_json
	FROM runs`

// Latest returns the most recent run recorded for suite, or
// ErrNoRuns.
func (s *Store) Latest(ctx context.Context, suite string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		selectRun+` WHERE suite = ? ORDER BY id DESC LIMIT 1`,
		suite,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("suite %q: %w", suite, ErrNoRuns)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// Recent returns up to n runs across all suites, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	if n <= 0 {
		return []Run{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		selectRun+` ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, n)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		recordedAt string
		resultJSON string
	)
	if err := row.Scan(
		&run.ID, &run.RunID, &run.Suite,
		&recordedAt, &run.Fingerprint, &resultJSON,
	); err != nil {
		return nil, err
	}

	at, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at of %s: %w", run.RunID, err)
	}
	run.RecordedAt = at

	var result scenario.RunResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("decode result of %s: %w", run.RunID, err)
	}
	run.Result = &result
	return &run, nil
}
