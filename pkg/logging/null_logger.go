package logging

// NullLogger discards all log output.
type NullLogger struct{}

func (NullLogger) Info(_ string, _ ...Field)  {}
func (NullLogger) Warn(_ string, _ ...Field)  {}
func (NullLogger) Error(_ string, _ ...Field) {}
func (NullLogger) Debug(_ string, _ ...Field) {}

// WithFields returns the NullLogger itself.
func (NullLogger) WithFields(_ ...Field) Logger {
	return NullLogger{}
}

func (NullLogger) LogCase(_ CaseLog) {}

func (NullLogger) Close() error { return nil }
