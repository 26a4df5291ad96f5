// Package metrics records case and run counters for the
// scenario runner.
package metrics

import "time"

// CaseMetrics defines the interface for recording run metrics.
type CaseMetrics interface {
	// RecordCase records a finished case.
	RecordCase(name, status string, duration time.Duration)
	// RecordExpectation records an expectation evaluation.
	RecordExpectation(kind string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveCases sets the gauge of running cases.
	SetActiveCases(count int)
}

// NoopMetrics is a no-op implementation of CaseMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordCase(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordExpectation(_ string, _ bool)      {}
func (NoopMetrics) IncrementRunTotal()                      {}
func (NoopMetrics) SetActiveCases(_ int)                    {}
