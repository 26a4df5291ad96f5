package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// jsonMarshal is a variable for dependency injection in tests.
var jsonMarshal = json.Marshal

// LogEntry represents a single JSON log entry.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LoggerConfig configures the JSONLogger.
type LoggerConfig struct {
	// OutputPath is the main log file. Output is used when it
	// is empty, and stdout when both are unset.
	OutputPath string
	Output     io.Writer
	// CaseLog is an optional file receiving one CaseLog per
	// line.
	CaseLog string
	Level   LogLevel
	Verbose bool
	Fields  map[string]any
}

// JSONLogger implements Logger with JSON Lines output.
type JSONLogger struct {
	mu      *sync.Mutex
	output  io.Writer
	caseLog io.Writer
	owned   []io.Closer
	level   LogLevel
	fields  map[string]any
	verbose bool
	closed  *bool
}

// NewJSONLogger creates a new JSON logger.
func NewJSONLogger(config LoggerConfig) (*JSONLogger, error) {
	logger := &JSONLogger{
		mu:      &sync.Mutex{},
		level:   config.Level,
		verbose: config.Verbose,
		fields:  config.Fields,
		closed:  new(bool),
	}

	if logger.fields == nil {
		logger.fields = make(map[string]any)
	}

	switch {
	case config.OutputPath != "":
		file, err := openAppend(config.OutputPath)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		logger.output = file
		logger.owned = append(logger.owned, file)
	case config.Output != nil:
		logger.output = config.Output
	default:
		logger.output = os.Stdout
	}

	if config.CaseLog != "" {
		file, err := openAppend(config.CaseLog)
		if err != nil {
			logger.closeOwned()
			return nil, fmt.Errorf(
				"failed to open case log: %w", err,
			)
		}
		logger.caseLog = file
		logger.owned = append(logger.owned, file)
	}

	return logger, nil
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(
		path,
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0644,
	)
}

func (l *JSONLogger) log(
	level LogLevel, msg string, fields ...Field,
) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if *l.closed {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Fields:    make(map[string]any),
	}

	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return
	}

	fmt.Fprintln(l.output, string(data))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

// Debug logs a debug message only if verbose is enabled.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	if l.verbose {
		l.log(LevelDebug, msg, fields...)
	}
}

// WithFields returns a new Logger with additional default
// fields. The derived logger shares the parent's writers and
// lock; closing either closes both.
func (l *JSONLogger) WithFields(fields ...Field) Logger {
	newFields := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for _, f := range fields {
		newFields[f.Key] = f.Value
	}

	return &JSONLogger{
		mu:      l.mu,
		output:  l.output,
		caseLog: l.caseLog,
		level:   l.level,
		verbose: l.verbose,
		fields:  newFields,
		closed:  l.closed,
	}
}

// LogCase writes a case outcome to the dedicated case log.
func (l *JSONLogger) LogCase(entry CaseLog) {
	if l.caseLog == nil {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339Nano)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if *l.closed {
		return
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return
	}

	fmt.Fprintln(l.caseLog, string(data))
}

// Close closes the files the logger opened. Writers passed in
// through LoggerConfig.Output are left open.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if *l.closed {
		return nil
	}
	*l.closed = true
	return l.closeOwned()
}

func (l *JSONLogger) closeOwned() error {
	var first error
	for _, c := range l.owned {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.owned = nil
	return first
}

// SetupLogging creates a JSON logger writing run.log and
// cases.log in logsDir.
func SetupLogging(
	logsDir string,
	verbose bool,
) (*JSONLogger, error) {
	config := LoggerConfig{
		OutputPath: filepath.Join(logsDir, "run.log"),
		CaseLog:    filepath.Join(logsDir, "cases.log"),
		Level:      LevelInfo,
		Verbose:    verbose,
	}

	if verbose {
		config.Level = LevelDebug
	}

	return NewJSONLogger(config)
}
