package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"digital.vasic.corespec/pkg/scenario"
)

// TextReporter renders a documentation-style tree of cases,
// the numbered failure list, and the counts line.
type TextReporter struct{}

// NewTextReporter creates a text reporter.
func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

// Generate renders result as plain text.
func (r *TextReporter) Generate(
	result *scenario.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer
	r.writeTree(&buf, result)
	r.writeFailures(&buf, result)
	if buf.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString(CountsLine(result))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Write renders result to w.
func (r *TextReporter) Write(
	w io.Writer,
	result *scenario.RunResult,
) error {
	return writeTo(w, result, r.Generate)
}

func (r *TextReporter) writeTree(
	buf *bytes.Buffer,
	result *scenario.RunResult,
) {
	var prev []string
	failure := 0
	for _, c := range result.Cases {
		common := 0
		for common < len(prev) && common < len(c.Path) &&
			prev[common] == c.Path[common] {
			common++
		}
		for depth := common; depth < len(c.Path); depth++ {
			fmt.Fprintf(buf, "%s%s\n", indent(depth), c.Path[depth])
		}
		prev = c.Path

		marker := ""
		switch c.Status {
		case scenario.StatusFailed:
			failure++
			marker = fmt.Sprintf(" (FAILED - %d)", failure)
		case scenario.StatusErrored:
			failure++
			marker = fmt.Sprintf(" (ERROR - %d)", failure)
		case scenario.StatusSkipped:
			marker = " (PENDING)"
		}
		fmt.Fprintf(buf, "%s%s%s\n", indent(len(c.Path)), c.Name, marker)
	}
}

func (r *TextReporter) writeFailures(
	buf *bytes.Buffer,
	result *scenario.RunResult,
) {
	if len(result.Failures) == 0 {
		return
	}
	buf.WriteString("\nFailures:\n")
	for i, f := range result.Failures {
		fmt.Fprintf(buf, "\n  %d) %s\n", i+1, f.CaseName)
		prefix := ""
		if f.Kind == scenario.FailureUnexpected {
			prefix = "error: "
		}
		for _, line := range strings.Split(prefix+f.Message, "\n") {
			fmt.Fprintf(buf, "     %s\n", line)
		}
	}
}

// CountsLine summarises result, for example
// "12 examples, 1 failure, 0 errors, 3 pending".
func CountsLine(result *scenario.RunResult) string {
	return fmt.Sprintf(
		"%s, %s, %s, %d pending",
		plural(result.Total(), "example"),
		plural(result.Failed, "failure"),
		plural(result.Errored, "error"),
		result.Skipped,
	)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
