package scenario

// Failure kinds distinguish a wrong answer from a crash.
const (
	FailureAssertion  = "assertion"
	FailureUnexpected = "unexpected"
)

// CaseResult is the outcome of one scenario case. It carries no
// timing data so that repeated runs compare equal.
type CaseResult struct {
	// Path holds the names of the enclosing groups, outermost
	// first.
	Path []string `json:"path"`

	// Name is the case name.
	Name string `json:"name"`

	// Status is the terminal status of the case.
	Status Status `json:"status"`

	// Message is the diagnostic for failed or errored cases.
	Message string `json:"message,omitempty"`

	// Output holds captured standard output, when capture
	// is enabled.
	Output string `json:"output,omitempty"`
}

// FullName returns the case name prefixed with its group path.
func (c CaseResult) FullName() string {
	return JoinPath(c.Path, c.Name)
}

// Failure records a failed or errored case for the summary.
type Failure struct {
	// CaseName is the full case name.
	CaseName string `json:"case_name"`

	// Message is the diagnostic.
	Message string `json:"message"`

	// Kind is FailureAssertion or FailureUnexpected.
	Kind string `json:"kind"`
}

// RunResult aggregates the outcome of one run over a registry.
type RunResult struct {
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Errored  int          `json:"errored"`
	Skipped  int          `json:"skipped"`
	Failures []Failure    `json:"failures"`
	Cases    []CaseResult `json:"cases"`
}

// NewRunResult creates an empty RunResult.
func NewRunResult() *RunResult {
	return &RunResult{
		Failures: []Failure{},
		Cases:    []CaseResult{},
	}
}

// Record adds a terminal case result, updating the counters and
// the failure list. Non-terminal statuses are ignored.
func (r *RunResult) Record(c CaseResult) {
	switch c.Status {
	case StatusPassed:
		r.Passed++
	case StatusFailed:
		r.Failed++
		r.Failures = append(r.Failures, Failure{
			CaseName: c.FullName(),
			Message:  c.Message,
			Kind:     FailureAssertion,
		})
	case StatusErrored:
		r.Errored++
		r.Failures = append(r.Failures, Failure{
			CaseName: c.FullName(),
			Message:  c.Message,
			Kind:     FailureUnexpected,
		})
	case StatusSkipped:
		r.Skipped++
	default:
		return
	}
	r.Cases = append(r.Cases, c)
}

// Total returns the number of recorded cases.
func (r *RunResult) Total() int {
	return r.Passed + r.Failed + r.Errored + r.Skipped
}

// Executed returns the number of cases that entered Running.
func (r *RunResult) Executed() int {
	return r.Passed + r.Failed + r.Errored
}

// OK returns true when nothing failed and nothing errored.
func (r *RunResult) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}
