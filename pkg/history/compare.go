package history

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"iter"

	"golang.org/x/text/unicode/norm"

	"digital.vasic.corespec/pkg/scenario"
)

// Fingerprint returns the SHA-256 of the canonical JSON form of
// result. Two runs with equal results share a fingerprint.
func Fingerprint(result *scenario.RunResult) (string, error) {
	data, err := canonicalJSON(result)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON encodes result with NFC-normalized text and no
// HTML escaping. Struct field order keeps the key order fixed.
func canonicalJSON(result *scenario.RunResult) ([]byte, error) {
	c := scenario.RunResult{
		Passed:   result.Passed,
		Failed:   result.Failed,
		Errored:  result.Errored,
		Skipped:  result.Skipped,
		Failures: make([]scenario.Failure, len(result.Failures)),
		Cases:    make([]scenario.CaseResult, len(result.Cases)),
	}
	for i, f := range result.Failures {
		c.Failures[i] = scenario.Failure{
			CaseName: norm.NFC.String(f.CaseName),
			Message:  norm.NFC.String(f.Message),
			Kind:     f.Kind,
		}
	}
	for i, cr := range result.Cases {
		path := make([]string, len(cr.Path))
		for j, p := range cr.Path {
			path[j] = norm.NFC.String(p)
		}
		c.Cases[i] = scenario.CaseResult{
			Path:    path,
			Name:    norm.NFC.String(cr.Name),
			Status:  cr.Status,
			Message: norm.NFC.String(cr.Message),
			Output:  norm.NFC.String(cr.Output),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Regressions lists the cases of cur that passed in prev and
// now fail or error. Cases are matched by full name; repeated
// names are matched by occurrence.
func Regressions(prev, cur *scenario.RunResult) []string {
	before := make(map[string]scenario.Status)
	for key, c := range keyed(prev) {
		before[key] = c.Status
	}

	var out []string
	for key, c := range keyed(cur) {
		if before[key] != scenario.StatusPassed {
			continue
		}
		if c.Status == scenario.StatusFailed ||
			c.Status == scenario.StatusErrored {
			out = append(out, c.FullName())
		}
	}
	return out
}

// keyed yields the cases of r keyed by full name plus
// occurrence number.
func keyed(r *scenario.RunResult) iter.Seq2[string, scenario.CaseResult] {
	return func(yield func(string, scenario.CaseResult) bool) {
		if r == nil {
			return
		}
		seen := make(map[string]int)
		for _, c := range r.Cases {
			name := c.FullName()
			seen[name]++
			if !yield(fmt.Sprintf("%s#%d", name, seen[name]), c) {
				return
			}
		}
	}
}
