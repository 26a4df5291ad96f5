package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// MarkdownReporter renders a run as a Markdown document.
type MarkdownReporter struct {
	opts options
}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter(opts ...Option) *MarkdownReporter {
	return &MarkdownReporter{opts: buildOptions(opts)}
}

// Generate renders result as Markdown.
func (r *MarkdownReporter) Generate(
	result *scenario.RunResult,
) ([]byte, error) {
	var sb bytes.Buffer

	fmt.Fprintf(&sb, "# %s\n\n", r.opts.title)
	if r.opts.runID != "" {
		fmt.Fprintf(&sb, "**Run ID:** %s\n\n", r.opts.runID)
	}
	if !r.opts.generatedAt.IsZero() {
		fmt.Fprintf(
			&sb, "**Generated:** %s\n\n",
			r.opts.generatedAt.Format(time.RFC3339),
		)
	}

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Examples | %d |\n", result.Total())
	fmt.Fprintf(&sb, "| Passed | %d |\n", result.Passed)
	fmt.Fprintf(&sb, "| Failed | %d |\n", result.Failed)
	fmt.Fprintf(&sb, "| Errored | %d |\n", result.Errored)
	fmt.Fprintf(&sb, "| Pending | %d |\n", result.Skipped)

	if len(result.Failures) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for i, f := range result.Failures {
			fmt.Fprintf(
				&sb, "%d. **%s** (%s)\n\n",
				i+1, mdEscape(f.CaseName), f.Kind,
			)
			sb.WriteString("   ```\n")
			for _, line := range strings.Split(f.Message, "\n") {
				fmt.Fprintf(&sb, "   %s\n", line)
			}
			sb.WriteString("   ```\n\n")
		}
	} else {
		sb.WriteString("\n")
	}

	if len(result.Cases) > 0 {
		sb.WriteString("## Cases\n\n")
		sb.WriteString("| Case | Status |\n")
		sb.WriteString("|------|--------|\n")
		for _, c := range result.Cases {
			fmt.Fprintf(
				&sb, "| %s | %s |\n",
				mdEscape(c.FullName()),
				strings.ToUpper(string(c.Status)),
			)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(CountsLine(result))
	sb.WriteString("\n\n---\n\n")
	sb.WriteString("*Generated by corespec*\n")

	return sb.Bytes(), nil
}

// Write renders result to w.
func (r *MarkdownReporter) Write(
	w io.Writer,
	result *scenario.RunResult,
) error {
	return writeTo(w, result, r.Generate)
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
