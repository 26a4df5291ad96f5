package scenario

import "time"

// EventType identifies a lifecycle event emitted by the runner.
type EventType string

const (
	EventRunStarted   EventType = "run_started"
	EventCaseStarted  EventType = "case_started"
	EventCaseFinished EventType = "case_finished"
	EventCaseSkipped  EventType = "case_skipped"
	EventRunFinished  EventType = "run_finished"
)

// Event is a lifecycle notification. Observers such as the live
// monitor receive events in the order cases finish.
type Event struct {
	Type      EventType     `json:"type"`
	Path      []string      `json:"path,omitempty"`
	Name      string        `json:"name,omitempty"`
	Status    Status        `json:"status,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// FullName returns the event's case name prefixed with its path.
func (e Event) FullName() string {
	return JoinPath(e.Path, e.Name)
}

// EventSink receives runner events.
type EventSink func(Event)
