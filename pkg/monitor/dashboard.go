package monitor

import (
	"sync"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// Run status values reported by the dashboard.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Dashboard keeps a real-time view of a run's cases.
type Dashboard struct {
	mu        sync.RWMutex
	runID     string
	startTime time.Time
	status    string
	order     []string
	cases     map[string]CaseState
}

// CaseState is the current state of one case on the dashboard.
type CaseState struct {
	Name      string          `json:"name"`
	Status    scenario.Status `json:"status"`
	StartTime *time.Time      `json:"start_time,omitempty"`
	EndTime   *time.Time      `json:"end_time,omitempty"`
	Duration  time.Duration   `json:"duration,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Errored  int     `json:"errored"`
	Skipped  int     `json:"skipped"`
	Running  int     `json:"running"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// Snapshot is an immutable copy of the dashboard state.
type Snapshot struct {
	RunID     string           `json:"run_id"`
	StartTime time.Time        `json:"start_time"`
	Status    string           `json:"status"`
	Cases     []CaseState      `json:"cases"`
	Summary   DashboardSummary `json:"summary"`
}

// NewDashboard creates an empty dashboard for runID.
func NewDashboard(runID string) *Dashboard {
	return &Dashboard{
		runID:     runID,
		startTime: time.Now(),
		status:    RunRunning,
		cases:     make(map[string]CaseState),
	}
}

// Update folds one runner event into the dashboard.
func (d *Dashboard) Update(event scenario.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch event.Type {
	case scenario.EventRunStarted:
		d.status = RunRunning
		return
	case scenario.EventRunFinished:
		d.status = RunCompleted
		if s := d.summary(); s.Failed+s.Errored > 0 {
			d.status = RunFailed
		}
		return
	}

	name := event.FullName()
	state, exists := d.cases[name]
	if !exists {
		state = CaseState{Name: name, Status: scenario.StatusDeclared}
		d.order = append(d.order, name)
	}

	now := event.Timestamp
	if now.IsZero() {
		now = time.Now()
	}
	switch event.Type {
	case scenario.EventCaseStarted:
		state.Status = scenario.StatusRunning
		state.StartTime = &now
	case scenario.EventCaseFinished:
		state.Status = event.Status
		state.EndTime = &now
		state.Duration = event.Duration
		state.Message = event.Message
	case scenario.EventCaseSkipped:
		state.Status = scenario.StatusSkipped
	}
	d.cases[name] = state
}

func (d *Dashboard) summary() DashboardSummary {
	s := DashboardSummary{}
	for _, c := range d.cases {
		s.Total++
		switch c.Status {
		case scenario.StatusPassed:
			s.Passed++
		case scenario.StatusFailed:
			s.Failed++
		case scenario.StatusErrored:
			s.Errored++
		case scenario.StatusSkipped:
			s.Skipped++
		case scenario.StatusRunning:
			s.Running++
		}
	}
	if executed := s.Passed + s.Failed + s.Errored; executed > 0 {
		s.PassRate = float64(s.Passed) / float64(executed) * 100
	}
	s.Elapsed = time.Since(d.startTime).Round(time.Millisecond).String()
	return s
}

// Snapshot returns a copy of the current dashboard state with
// cases in the order they were first seen.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cases := make([]CaseState, 0, len(d.order))
	for _, name := range d.order {
		cases = append(cases, d.cases[name])
	}
	return Snapshot{
		RunID:     d.runID,
		StartTime: d.startTime,
		Status:    d.status,
		Cases:     cases,
		Summary:   d.summary(),
	}
}

// SetStatus sets the overall run status.
func (d *Dashboard) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

// BuildDashboard creates a Dashboard by replaying all events
// held by collector.
func BuildDashboard(
	runID string,
	collector *EventCollector,
) *Dashboard {
	d := NewDashboard(runID)
	for _, event := range collector.Events() {
		d.Update(event)
	}
	return d
}
