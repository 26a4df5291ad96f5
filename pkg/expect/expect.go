// Package expect is the expectation evaluator of the scenario
// harness. Every function compares an observed value against a
// declared expectation and returns nil on success or a
// *scenario.AssertionError carrying a human-readable diagnostic.
// Evaluation is pure: nothing here mutates its inputs or any
// shared state.
//
// Error messages raised by code under test are matched with
// regular expressions (Go RE2 syntax, unanchored). Use Literal
// to match a message verbatim.
package expect

import "digital.vasic.corespec/pkg/scenario"

// Expectation kinds, used as the Kind of returned assertion
// errors.
const (
	KindEquality = "equality"
	KindIdentity = "identity"
	KindType     = "type"
	KindPattern  = "pattern"
	KindRaises   = "raises"
	KindOrdering = "ordering"
)

// First returns the first non-nil error, letting a case chain
// several expectations in one return statement.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// True fails unless cond holds.
func True(cond bool, msg string) error {
	if cond {
		return nil
	}
	return scenario.Failf(KindEquality, "%s", msg)
}

func fail(kind, format string, args ...any) error {
	return scenario.Failf(kind, format, args...)
}
