package scenario

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a malformed declaration: an empty
// name, a missing action, an unknown operation in a declaration
// file. It is fatal to registry construction.
type ConfigurationError struct {
	// Subject names what was being declared or loaded.
	Subject string

	// Reason describes what is wrong with it.
	Reason string

	// Err is an optional underlying cause.
	Err error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Subject != "" {
		msg += fmt.Sprintf(" in %s", e.Subject)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewConfigurationError builds a ConfigurationError.
func NewConfigurationError(
	subject, reason string,
) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Reason: reason}
}

// AssertionError reports an expected-versus-actual mismatch
// inside a case. It stops the case but never the run.
type AssertionError struct {
	// Kind is the expectation kind that failed (equality,
	// identity, type, pattern, raises, ordering, ...).
	Kind string

	// Message is the human-readable diagnostic.
	Message string
}

// Error implements error.
func (e *AssertionError) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return e.Kind + ": " + e.Message
}

// Failf builds an AssertionError with a formatted message.
func Failf(kind, format string, args ...any) *AssertionError {
	return &AssertionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnexpectedError wraps an error raised by the code under test
// that no expectation was waiting for, including recovered
// panics and timeouts.
type UnexpectedError struct {
	// Case is the full name of the case that raised it.
	Case string

	// Err is the raised error.
	Err error
}

// Error implements error.
func (e *UnexpectedError) Error() string {
	if e.Case == "" {
		return "unexpected error: " + e.Err.Error()
	}
	return fmt.Sprintf(
		"unexpected error in %q: %v", e.Case, e.Err,
	)
}

// Unwrap returns the raised error.
func (e *UnexpectedError) Unwrap() error { return e.Err }

// PanicError carries a value recovered from a panicking action.
type PanicError struct {
	Value any
}

// Error implements error.
func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "panic: " + err.Error()
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes a panicked error value, if any.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsAssertion reports whether err is, or wraps, an
// *AssertionError.
func IsAssertion(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}

// IsConfiguration reports whether err is, or wraps, a
// *ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// Classify maps the error returned by an action to the terminal
// status it produces. A panic or an unexpected error is errored
// even when it carries an *AssertionError.
func Classify(err error) Status {
	var (
		pe *PanicError
		ue *UnexpectedError
	)
	switch {
	case err == nil:
		return StatusPassed
	case errors.As(err, &pe), errors.As(err, &ue):
		return StatusErrored
	case IsAssertion(err):
		return StatusFailed
	default:
		return StatusErrored
	}
}
