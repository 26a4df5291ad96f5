// Package report renders run results as text, JSON, Markdown,
// and HTML, and keeps a JSON-lines run history.
package report

import (
	"fmt"
	"io"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// Output formats understood by New.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// DefaultTitle heads Markdown and HTML reports.
const DefaultTitle = "Scenario Run"

// Reporter defines the interface for rendering a run result.
type Reporter interface {
	// Generate renders result into a byte slice.
	Generate(result *scenario.RunResult) ([]byte, error)

	// Write renders result to w.
	Write(w io.Writer, result *scenario.RunResult) error
}

// Option configures the reporters built by New.
type Option func(*options)

type options struct {
	title       string
	runID       string
	generatedAt time.Time
	pretty      bool
}

// WithTitle sets the heading used by Markdown and HTML reports.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithRunID wraps JSON output in an envelope carrying id and
// stamps Markdown and HTML reports with it.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithGeneratedAt stamps reports with t. Reports carry no
// timestamp unless this is set.
func WithGeneratedAt(t time.Time) Option {
	return func(o *options) { o.generatedAt = t }
}

// WithPretty indents JSON output.
func WithPretty(pretty bool) Option {
	return func(o *options) { o.pretty = pretty }
}

func buildOptions(opts []Option) options {
	o := options{title: DefaultTitle}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the reporter for format.
func New(format string, opts ...Option) (Reporter, error) {
	o := buildOptions(opts)
	switch format {
	case FormatText, "":
		return &TextReporter{}, nil
	case FormatJSON:
		return &JSONReporter{opts: o}, nil
	case FormatMarkdown:
		return &MarkdownReporter{opts: o}, nil
	case FormatHTML:
		return &HTMLReporter{opts: o}, nil
	}
	return nil, &scenario.ConfigurationError{
		Subject: "report",
		Reason:  fmt.Sprintf("unknown format %q", format),
	}
}

// writeTo renders with gen and writes the bytes to w.
func writeTo(
	w io.Writer,
	result *scenario.RunResult,
	gen func(*scenario.RunResult) ([]byte, error),
) error {
	data, err := gen(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
