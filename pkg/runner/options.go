package runner

import (
	"context"
	"regexp"
	"time"

	"digital.vasic.corespec/pkg/logging"
	"digital.vasic.corespec/pkg/metrics"
	"digital.vasic.corespec/pkg/registry"
	"digital.vasic.corespec/pkg/scenario"
)

// Option configures a Runner.
type Option func(*Runner)

// Hook is a function invoked before or after a case action. It
// receives the case being run.
type Hook func(ctx context.Context, e registry.Entry) error

// Around acquires per-case state before the action runs. The
// returned restore func, if any, is called once the action has
// finished, whatever the outcome. Restores run in reverse
// order of acquisition.
type Around func(
	ctx context.Context,
	e registry.Entry,
) (restore func(), err error)

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder used by the runner.
func WithMetrics(m metrics.CaseMetrics) Option {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithEventSink adds an observer for lifecycle events. Sinks
// are called one at a time, even during a concurrent run.
func WithEventSink(sink scenario.EventSink) Option {
	return func(r *Runner) {
		if sink != nil {
			r.sinks = append(r.sinks, sink)
		}
	}
}

// WithAround adds a scoped acquisition around every executed
// case.
func WithAround(a Around) Option {
	return func(r *Runner) {
		r.arounds = append(r.arounds, a)
	}
}

// WithPreHook adds a hook run before every executed case. A
// failing pre-hook errors the case without running it.
func WithPreHook(h Hook) Option {
	return func(r *Runner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a hook run after every executed case.
// Post-hook failures are logged as warnings.
func WithPostHook(h Hook) Option {
	return func(r *Runner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithCaseTimeout bounds the duration of a single action. A
// case that exceeds it is errored. Zero means no limit.
func WithCaseTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.caseTimeout = timeout
	}
}

// WithConcurrency sets how many cases may run at once. Values
// below one are treated as one.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = max(n, 1)
	}
}

// WithOutputCapture redirects os.Stdout into the case result
// while each action runs. It requires sequential execution.
func WithOutputCapture(enabled bool) Option {
	return func(r *Runner) {
		r.capture = enabled
	}
}

// WithFilter restricts execution to cases whose full name
// matches pattern. Other cases are reported as skipped. An
// empty pattern disables filtering.
func WithFilter(pattern string) Option {
	return func(r *Runner) {
		r.filter, r.filterErr = nil, nil
		if pattern == "" {
			return
		}
		r.filter, r.filterErr = regexp.Compile(pattern)
	}
}
