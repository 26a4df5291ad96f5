package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// HTMLReporter renders a run as a standalone HTML page.
type HTMLReporter struct {
	opts options
}

// NewHTMLReporter creates an HTML reporter.
func NewHTMLReporter(opts ...Option) *HTMLReporter {
	return &HTMLReporter{opts: buildOptions(opts)}
}

// Generate renders result as HTML.
func (r *HTMLReporter) Generate(
	result *scenario.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders result to w.
func (r *HTMLReporter) Write(
	w io.Writer,
	result *scenario.RunResult,
) error {
	r.writeHeader(w, r.opts.title)

	fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(r.opts.title))
	if r.opts.runID != "" {
		fmt.Fprintf(
			w,
			"<p><strong>Run ID:</strong> %s</p>\n",
			html.EscapeString(r.opts.runID),
		)
	}
	if !r.opts.generatedAt.IsZero() {
		fmt.Fprintf(
			w,
			"<p><strong>Generated:</strong> %s</p>\n",
			r.opts.generatedAt.Format(time.RFC3339),
		)
	}

	r.writeSummaryTable(w, result)
	r.writeFailuresSection(w, result)
	r.writeCasesSection(w, result)

	r.writeFooter(w)
	return nil
}

func (r *HTMLReporter) writeSummaryTable(
	w io.Writer,
	result *scenario.RunResult,
) {
	statusClass := "status-passed"
	status := "PASSED"
	if !result.OK() {
		statusClass = "status-failed"
		status = "FAILED"
	}

	fmt.Fprintln(w, "<h2>Summary</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(
		w,
		"<tr><td>Status</td><td class=\"%s\">"+
			"<strong>%s</strong></td></tr>\n",
		statusClass, status,
	)
	rows := []struct {
		label string
		value int
	}{
		{"Examples", result.Total()},
		{"Passed", result.Passed},
		{"Failed", result.Failed},
		{"Errored", result.Errored},
		{"Pending", result.Skipped},
	}
	for _, row := range rows {
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%d</td></tr>\n",
			row.label, row.value,
		)
	}
	fmt.Fprintln(w, "</table>")
	fmt.Fprintf(
		w, "<p>%s</p>\n", html.EscapeString(CountsLine(result)),
	)
}

func (r *HTMLReporter) writeFailuresSection(
	w io.Writer,
	result *scenario.RunResult,
) {
	if len(result.Failures) == 0 {
		return
	}

	fmt.Fprintln(w, "<h2>Failures</h2>")
	fmt.Fprintln(w, "<ol>")
	for _, f := range result.Failures {
		cls := "status-failed"
		if f.Kind == scenario.FailureUnexpected {
			cls = "status-errored"
		}
		fmt.Fprintf(
			w,
			"<li><span class=\"%s\">%s</span>"+
				"<pre><code>%s</code></pre></li>\n",
			cls,
			html.EscapeString(f.CaseName),
			html.EscapeString(f.Message),
		)
	}
	fmt.Fprintln(w, "</ol>")
}

func (r *HTMLReporter) writeCasesSection(
	w io.Writer,
	result *scenario.RunResult,
) {
	if len(result.Cases) == 0 {
		return
	}

	fmt.Fprintln(w, "<h2>Cases</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w, "<tr><th>Case</th><th>Status</th></tr>",
	)
	for _, c := range result.Cases {
		fmt.Fprintf(
			w,
			"<tr><td>%s</td>"+
				"<td class=\"status-%s\">%s</td></tr>\n",
			html.EscapeString(c.FullName()),
			c.Status,
			strings.ToUpper(string(c.Status)),
		)
	}
	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
h3 { color: #34495e; }
table {
  border-collapse: collapse;
  width: 100%%;
  margin: 10px 0;
  background: #fff;
}
th, td {
  border: 1px solid #ddd;
  padding: 8px 12px;
  text-align: left;
}
th { background: #3498db; color: #fff; }
tr:nth-child(even) { background: #f2f2f2; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
.status-errored { color: #d35400; font-weight: bold; }
.status-skipped { color: #f39c12; }
code {
  background: #ecf0f1;
  padding: 2px 6px;
  border-radius: 3px;
  font-size: 0.9em;
}
footer {
  margin-top: 40px;
  padding-top: 10px;
  border-top: 1px solid #ddd;
  color: #7f8c8d;
  font-size: 0.9em;
}
</style>
</head>
<body>
`, html.EscapeString(title))
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintln(w, "<footer>")
	fmt.Fprintln(
		w, "<p>Generated by corespec</p>",
	)
	fmt.Fprintln(w, "</footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
