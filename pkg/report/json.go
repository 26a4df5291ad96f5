package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"digital.vasic.corespec/pkg/scenario"
)

// Record is the plain result record handed to external
// tooling.
type Record struct {
	Passed   int                `json:"passed"`
	Failed   int                `json:"failed"`
	Errored  int                `json:"errored"`
	Skipped  int                `json:"skipped"`
	Failures []scenario.Failure `json:"failures"`
}

// NewRecord extracts the plain record from result.
func NewRecord(result *scenario.RunResult) Record {
	failures := result.Failures
	if failures == nil {
		failures = []scenario.Failure{}
	}
	return Record{
		Passed:   result.Passed,
		Failed:   result.Failed,
		Errored:  result.Errored,
		Skipped:  result.Skipped,
		Failures: failures,
	}
}

// Envelope wraps a Record with run identity and the per-case
// results.
type Envelope struct {
	RunID       string                `json:"run_id"`
	GeneratedAt *time.Time            `json:"generated_at,omitempty"`
	Result      Record                `json:"result"`
	Cases       []scenario.CaseResult `json:"cases"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// JSONReporter renders the result record. With a run id it
// renders an Envelope instead.
type JSONReporter struct {
	opts options
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts ...Option) *JSONReporter {
	return &JSONReporter{opts: buildOptions(opts)}
}

// Generate renders result as JSON.
func (r *JSONReporter) Generate(
	result *scenario.RunResult,
) ([]byte, error) {
	var v any = NewRecord(result)
	if r.opts.runID != "" {
		env := Envelope{
			RunID:  r.opts.runID,
			Result: NewRecord(result),
			Cases:  result.Cases,
		}
		if !r.opts.generatedAt.IsZero() {
			at := r.opts.generatedAt
			env.GeneratedAt = &at
		}
		v = env
	}

	if r.opts.pretty {
		data, err := jsonMarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	data, err := jsonMarshal(v)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write renders result to w.
func (r *JSONReporter) Write(
	w io.Writer,
	result *scenario.RunResult,
) error {
	return writeTo(w, result, r.Generate)
}

// Marshal functions, replaceable in tests.
var (
	jsonMarshal       = json.Marshal
	jsonMarshalIndent = json.MarshalIndent
)
