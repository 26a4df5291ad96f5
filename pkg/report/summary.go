package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// SavedReport lists the files written by Save.
type SavedReport struct {
	JSONPath     string
	MarkdownPath string
}

// Save writes the JSON envelope and the Markdown report of
// result into outputDir, named after at, and points the
// latest_report.json and latest_report.md symlinks at them.
func Save(
	result *scenario.RunResult,
	outputDir, runID string,
	at time.Time,
) (*SavedReport, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := at.Format("20060102_150405")
	opts := []Option{
		WithRunID(runID),
		WithGeneratedAt(at),
		WithPretty(true),
	}

	jsonPath := filepath.Join(
		outputDir, fmt.Sprintf("report_%s.json", ts),
	)
	jsonData, err := NewJSONReporter(opts...).Generate(result)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to marshal report: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return nil, fmt.Errorf(
			"failed to write JSON report: %w", err,
		)
	}

	mdPath := filepath.Join(
		outputDir, fmt.Sprintf("report_%s.md", ts),
	)
	mdData, err := NewMarkdownReporter(opts...).Generate(result)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(mdPath, mdData, 0644); err != nil {
		return nil, fmt.Errorf(
			"failed to write Markdown report: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_report.json")
	latestMD := filepath.Join(outputDir, "latest_report.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return &SavedReport{
		JSONPath:     jsonPath,
		MarkdownPath: mdPath,
	}, nil
}
