// Package scenario defines the shared model of the scenario harness:
// case actions, execution statuses, per-case and per-run
// results, lifecycle events, and the three error kinds that
// drive outcome classification.
package scenario

import "strings"

// Action is the executable body of a scenario case. It takes no
// arguments and returns nil when every expectation held, an
// *AssertionError when an expectation did not hold, or any
// other error when the code under test failed unexpectedly.
type Action func() error

// PathSeparator joins group and case names into a full case
// name, the way a describe/it report prints them.
const PathSeparator = " "

// JoinPath renders a group path plus a case name as a single
// human-readable case name.
func JoinPath(path []string, name string) string {
	parts := make([]string, 0, len(path)+1)
	for _, p := range path {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, PathSeparator)
}
