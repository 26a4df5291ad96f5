package metrics

import (
	"sort"
	"sync"
	"time"
)

// MemoryMetrics implements CaseMetrics with in-memory counters
// and duration samples. It is safe for concurrent use. Export
// to an external system is left to the host application.
type MemoryMetrics struct {
	mu           sync.RWMutex
	cases        map[string]int
	expectations map[string]int
	durations    map[string][]time.Duration
	runTotal     int
	active       int
	peak         int
}

// NewMemoryMetrics creates a new MemoryMetrics instance.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		cases:        make(map[string]int),
		expectations: make(map[string]int),
		durations:    make(map[string][]time.Duration),
	}
}

func (m *MemoryMetrics) RecordCase(name, status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cases[status]++
	m.durations[name] = append(m.durations[name], duration)
}

func (m *MemoryMetrics) RecordExpectation(kind string, passed bool) {
	status := "failed"
	if passed {
		status = "passed"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expectations[kind+":"+status]++
}

func (m *MemoryMetrics) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

func (m *MemoryMetrics) SetActiveCases(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = count
	m.peak = max(m.peak, count)
}

// CaseCount returns the number of cases recorded with status.
func (m *MemoryMetrics) CaseCount(status string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cases[status]
}

// ExpectationCount returns the evaluations of kind with the
// given outcome.
func (m *MemoryMetrics) ExpectationCount(kind string, passed bool) int {
	status := "failed"
	if passed {
		status = "passed"
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expectations[kind+":"+status]
}

// Durations returns the recorded durations of the named case.
func (m *MemoryMetrics) Durations(name string) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.durations[name]...)
}

// Slowest returns up to n case names ordered by their longest
// recorded duration, slowest first.
func (m *MemoryMetrics) Slowest(n int) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	longest := make(map[string]time.Duration, len(m.durations))
	names := make([]string, 0, len(m.durations))
	for name, ds := range m.durations {
		for _, d := range ds {
			longest[name] = max(longest[name], d)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if longest[names[i]] != longest[names[j]] {
			return longest[names[i]] > longest[names[j]]
		}
		return names[i] < names[j]
	})
	if n < len(names) {
		names = names[:n]
	}
	return names
}

// RunTotal returns the total number of runs.
func (m *MemoryMetrics) RunTotal() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runTotal
}

// ActiveCases returns the current active cases gauge.
func (m *MemoryMetrics) ActiveCases() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// PeakActiveCases returns the highest value the active gauge
// has held.
func (m *MemoryMetrics) PeakActiveCases() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.peak
}
