package logging

import "errors"

// MultiLogger fans every call out to a fixed set of loggers,
// in the order they were given.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to multiple
// destinations. Nil loggers are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Combine returns the cheapest Logger covering loggers: a
// NullLogger for none, the logger itself for one, and a
// MultiLogger otherwise.
func Combine(loggers ...Logger) Logger {
	m := NewMultiLogger(loggers...)
	switch len(m.loggers) {
	case 0:
		return NullLogger{}
	case 1:
		return m.loggers[0]
	}
	return m
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) Info(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Info(msg, fields...) })
}

func (m *MultiLogger) Warn(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Warn(msg, fields...) })
}

func (m *MultiLogger) Error(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Error(msg, fields...) })
}

func (m *MultiLogger) Debug(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Debug(msg, fields...) })
}

// WithFields returns a MultiLogger whose inner loggers all
// carry fields.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	scoped := &MultiLogger{loggers: make([]Logger, 0, len(m.loggers))}
	m.each(func(l Logger) {
		scoped.loggers = append(scoped.loggers, l.WithFields(fields...))
	})
	return scoped
}

// LogCase records the case outcome in every case log.
func (m *MultiLogger) LogCase(entry CaseLog) {
	m.each(func(l Logger) { l.LogCase(entry) })
}

// Close closes every logger and joins their errors.
func (m *MultiLogger) Close() error {
	var errs []error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
