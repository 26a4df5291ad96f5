package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// ConsoleLogger provides colored console output.
type ConsoleLogger struct {
	mu      *sync.Mutex
	output  io.Writer
	verbose bool
	color   bool
	fields  map[string]any
}

// NewConsoleLogger creates a console logger writing to w, or to
// stderr when w is nil. When verbose is true, debug messages
// are emitted.
func NewConsoleLogger(w io.Writer, verbose bool) *ConsoleLogger {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleLogger{
		mu:      &sync.Mutex{},
		output:  w,
		verbose: verbose,
		color:   true,
		fields:  make(map[string]any),
	}
}

// WithoutColor disables ANSI escapes.
func (c *ConsoleLogger) WithoutColor() *ConsoleLogger {
	c.color = false
	return c
}

func (c *ConsoleLogger) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + colorReset
}

func (c *ConsoleLogger) log(
	level LogLevel, color, msg string, fields ...Field,
) {
	all := make([]Field, 0, len(c.fields)+len(fields))
	keys := make([]string, 0, len(c.fields))
	for k := range c.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		all = append(all, Field{Key: k, Value: c.fields[k]})
	}
	all = append(all, fields...)

	var fieldStr string
	if len(all) > 0 {
		parts := make([]string, 0, len(all))
		for _, f := range all {
			parts = append(
				parts,
				fmt.Sprintf("%s=%v", f.Key, f.Value),
			)
		}
		fieldStr = " " + c.paint(colorGray,
			fmt.Sprintf("{%s}", strings.Join(parts, ", ")))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(
		c.output, "%s [%s] %s%s\n",
		c.paint(colorGray, time.Now().Format("15:04:05")),
		c.paint(color, fmt.Sprintf("%-5s", level.String())),
		msg, fieldStr,
	)
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, colorBlue, msg, fields...)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, colorYellow, msg, fields...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, colorRed, msg, fields...)
}

// Debug logs a debug message only if verbose is enabled.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	if c.verbose {
		c.log(LevelDebug, colorGray, msg, fields...)
	}
}

// WithFields returns a new Logger with additional default
// fields.
func (c *ConsoleLogger) WithFields(
	fields ...Field,
) Logger {
	newFields := make(map[string]any)
	for k, v := range c.fields {
		newFields[k] = v
	}
	for _, f := range fields {
		newFields[f.Key] = f.Value
	}
	return &ConsoleLogger{
		mu:      c.mu,
		output:  c.output,
		verbose: c.verbose,
		color:   c.color,
		fields:  newFields,
	}
}

// LogCase prints a one-line case outcome, colored by status.
// Passing and skipped cases are only shown when verbose.
func (c *ConsoleLogger) LogCase(entry CaseLog) {
	color := colorGreen
	switch entry.Status {
	case "failed", "errored":
		color = colorRed
	case "skipped":
		color = colorYellow
	}
	if color != colorRed && !c.verbose {
		return
	}

	line := fmt.Sprintf("%s %s", c.paint(color, entry.Status), entry.FullName())
	if entry.Message != "" {
		line += ": " + entry.Message
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.output, line)
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}
