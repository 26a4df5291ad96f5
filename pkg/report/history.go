package report

import (
	"fmt"
	"os"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// HistoricalEntry represents a single run in the historical
// log.
type HistoricalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Suite     string    `json:"suite"`
	Status    string    `json:"status"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Errored   int       `json:"errored"`
	Skipped   int       `json:"skipped"`
}

// NewHistoricalEntry summarises result as a history entry.
func NewHistoricalEntry(
	at time.Time,
	runID, suite string,
	result *scenario.RunResult,
) HistoricalEntry {
	status := "passed"
	if !result.OK() {
		status = "failed"
	}
	return HistoricalEntry{
		Timestamp: at,
		RunID:     runID,
		Suite:     suite,
		Status:    status,
		Passed:    result.Passed,
		Failed:    result.Failed,
		Errored:   result.Errored,
		Skipped:   result.Skipped,
	}
}

// AppendToHistory adds an entry to the historical log stored
// at historyPath. Each entry is a single JSON line.
func AppendToHistory(
	historyPath string,
	entry HistoricalEntry,
) error {
	data, err := jsonMarshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
