package logging

// MockLogger is a Logger implementation for tests. It discards field
// context and captures messages for verification.
type MockLogger struct {
	Entries []LogEntry
}

// LogEntry is a single message captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
}

func (m *MockLogger) record(level, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, Message: msg})
}

// Debug captures a debug-level message.
func (m *MockLogger) Debug(msg string, _ ...Field) { m.record("DEBUG", msg) }

// Info captures an info-level message.
func (m *MockLogger) Info(msg string, _ ...Field) { m.record("INFO", msg) }

// Warn captures a warning-level message.
func (m *MockLogger) Warn(msg string, _ ...Field) { m.record("WARN", msg) }

// Error captures an error-level message.
func (m *MockLogger) Error(msg string, _ ...Field) { m.record("ERROR", msg) }

// WithError returns the logger itself; mock loggers keep no error context.
func (m *MockLogger) WithError(_ error) Logger { return m }

// WithField returns the logger itself; mock loggers keep no field context.
func (m *MockLogger) WithField(_ string, _ interface{}) Logger { return m }

// WithFields returns the logger itself; mock loggers keep no field context.
func (m *MockLogger) WithFields(_ ...Field) Logger { return m }

// HasEntry reports whether a message was logged at the given level.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}
