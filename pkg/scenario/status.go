package scenario

// Status is the lifecycle state of a single scenario case.
type Status string

// Case lifecycle states. A case starts Declared, moves to
// Running when its action is invoked, and ends in one of the
// terminal states. Skipped is reached directly from Declared.
const (
	StatusDeclared Status = "declared"
	StatusRunning  Status = "running"
	StatusPassed   Status = "passed"
	StatusFailed   Status = "failed"
	StatusErrored  Status = "errored"
	StatusSkipped  Status = "skipped"
)

// IsFinal returns true if the status is a terminal state.
func (s Status) IsFinal() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusErrored,
		StatusSkipped:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a
// legal step of the case state machine.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusDeclared:
		return next == StatusRunning || next == StatusSkipped
	case StatusRunning:
		return next == StatusPassed ||
			next == StatusFailed ||
			next == StatusErrored
	}
	return false
}

// String returns the status name.
func (s Status) String() string { return string(s) }
