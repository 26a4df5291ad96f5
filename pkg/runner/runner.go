// Package runner executes the cases of a sealed registry. It
// supports sequential and bounded-parallel execution with
// per-case timeouts, lifecycle hooks, and scoped acquisitions.
package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"digital.vasic.corespec/pkg/logging"
	"digital.vasic.corespec/pkg/metrics"
	"digital.vasic.corespec/pkg/registry"
	"digital.vasic.corespec/pkg/scenario"
)

// Runner walks a registry and turns every case into a terminal
// CaseResult.
type Runner struct {
	logger      logging.Logger
	metrics     metrics.CaseMetrics
	sinks       []scenario.EventSink
	arounds     []Around
	preHooks    []Hook
	postHooks   []Hook
	caseTimeout time.Duration
	concurrency int
	capture     bool
	filter      *regexp.Regexp
	filterErr   error

	sinkMu   sync.Mutex
	activeMu sync.Mutex
	active   int
}

// New creates a Runner with the supplied options. By default
// cases run one at a time with no timeout.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:      logging.NullLogger{},
		metrics:     metrics.NoopMetrics{},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run seals reg and executes every case in declaration order.
// It returns a ConfigurationError when the runner itself is
// misconfigured. If ctx is cancelled before every case has
// finished, the partial result is returned with ctx's error.
func (r *Runner) Run(
	ctx context.Context,
	reg *registry.Registry,
) (*scenario.RunResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	reg.Seal()
	entries := slices.Collect(reg.Entries())

	started := time.Now()
	r.emit(scenario.Event{Type: scenario.EventRunStarted})

	var results []scenario.CaseResult
	if r.concurrency > 1 {
		results = runParallel(ctx, r, entries, r.concurrency)
	} else {
		results = r.runSequential(ctx, entries)
	}

	result := scenario.NewRunResult()
	for _, cr := range results {
		result.Record(cr)
	}

	r.metrics.IncrementRunTotal()
	r.emit(scenario.Event{
		Type:     scenario.EventRunFinished,
		Duration: time.Since(started),
	})
	r.logger.Info("run_completed",
		logging.IntField("passed", result.Passed),
		logging.IntField("failed", result.Failed),
		logging.IntField("errored", result.Errored),
		logging.IntField("skipped", result.Skipped),
		logging.DurationField("duration", time.Since(started)),
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) validate() error {
	if r.filterErr != nil {
		return &scenario.ConfigurationError{
			Subject: "runner",
			Reason:  "invalid filter pattern",
			Err:     r.filterErr,
		}
	}
	if r.capture && r.concurrency > 1 {
		return scenario.NewConfigurationError(
			"runner",
			"output capture requires sequential execution",
		)
	}
	return nil
}

func (r *Runner) runSequential(
	ctx context.Context,
	entries []registry.Entry,
) []scenario.CaseResult {
	results := make([]scenario.CaseResult, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.runCase(ctx, e))
	}
	return results
}

// runCase drives one case from Declared to a terminal status.
func (r *Runner) runCase(
	ctx context.Context,
	e registry.Entry,
) scenario.CaseResult {
	cr := scenario.CaseResult{
		Path:   e.Path,
		Name:   e.Case.Name(),
		Status: scenario.StatusDeclared,
	}

	if e.Pending || !r.selected(e) {
		cr.Status = scenario.StatusSkipped
		r.finish(cr, scenario.EventCaseSkipped, 0)
		return cr
	}

	cr.Status = scenario.StatusRunning
	r.track(1)
	r.emit(scenario.Event{
		Type: scenario.EventCaseStarted,
		Path: e.Path,
		Name: cr.Name,
	})
	r.logger.Info("case_started",
		logging.CaseField(e.Path, e.Case.Name()),
	)

	start := time.Now()
	output, err := r.execute(ctx, e)
	elapsed := time.Since(start)
	r.track(-1)

	cr.Status = scenario.Classify(err)
	cr.Output = output
	if err != nil {
		cr.Message = err.Error()
		var ae *scenario.AssertionError
		if errors.As(err, &ae) {
			r.metrics.RecordExpectation(ae.Kind, false)
		}
	}

	for _, hook := range r.postHooks {
		if hookErr := hook(ctx, e); hookErr != nil {
			r.logger.Warn("post_hook_warning",
				logging.CaseField(e.Path, e.Case.Name()),
				logging.ErrorField(hookErr),
			)
		}
	}

	r.finish(cr, scenario.EventCaseFinished, elapsed)
	return cr
}

// execute runs the pre-hooks, the acquisitions, and the
// action. Acquisitions and capture are always released before
// it returns.
func (r *Runner) execute(
	ctx context.Context,
	e registry.Entry,
) (output string, err error) {
	for _, hook := range r.preHooks {
		if err := hook(ctx, e); err != nil {
			return "", fmt.Errorf("pre-hook failed: %v", err)
		}
	}

	for _, acquire := range r.arounds {
		restore, err := acquire(ctx, e)
		if err != nil {
			return "", fmt.Errorf("acquisition failed: %v", err)
		}
		if restore != nil {
			defer restore()
		}
	}

	if r.capture {
		c, err := startCapture()
		if err != nil {
			return "", err
		}
		defer func() { output = c.stop() }()
	}

	return "", r.invoke(ctx, e.Case.Action())
}

// invoke calls action, converting a panic into a PanicError
// and enforcing the case timeout. A timed-out action is
// abandoned, not stopped.
func (r *Runner) invoke(
	ctx context.Context,
	action scenario.Action,
) error {
	if action == nil {
		return errors.New("case has no action")
	}

	if r.caseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.caseTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- &scenario.PanicError{Value: v}
			}
		}()
		done <- action()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) &&
			r.caseTimeout > 0 {
			return fmt.Errorf(
				"case timed out after %v", r.caseTimeout,
			)
		}
		return fmt.Errorf("case interrupted: %w", ctx.Err())
	}
}

// track adjusts the running-case gauge.
func (r *Runner) track(delta int) {
	r.activeMu.Lock()
	defer r.activeMu.Unlock()
	r.active += delta
	r.metrics.SetActiveCases(r.active)
}

func (r *Runner) selected(e registry.Entry) bool {
	return r.filter == nil || r.filter.MatchString(e.FullName())
}

// finish reports a terminal case to the metrics, the case log,
// and the event sinks.
func (r *Runner) finish(
	cr scenario.CaseResult,
	event scenario.EventType,
	elapsed time.Duration,
) {
	r.metrics.RecordCase(
		cr.FullName(), string(cr.Status), elapsed,
	)
	r.logger.LogCase(logging.CaseLog{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       cr.Path,
		Name:       cr.Name,
		Status:     string(cr.Status),
		Message:    cr.Message,
		DurationMs: elapsed.Milliseconds(),
	})
	if event == scenario.EventCaseFinished {
		r.logger.Info("case_finished",
			logging.CaseField(cr.Path, cr.Name),
			logging.StringField("status", string(cr.Status)),
			logging.DurationField("duration", elapsed),
		)
	}
	r.emit(scenario.Event{
		Type:     event,
		Path:     cr.Path,
		Name:     cr.Name,
		Status:   cr.Status,
		Message:  cr.Message,
		Duration: elapsed,
	})
}

// emit delivers an event to every sink under a lock.
func (r *Runner) emit(ev scenario.Event) {
	if len(r.sinks) == 0 {
		return
	}
	ev.Timestamp = time.Now()

	r.sinkMu.Lock()
	defer r.sinkMu.Unlock()
	for _, sink := range r.sinks {
		sink(ev)
	}
}
