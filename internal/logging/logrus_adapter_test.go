package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogrusAdapterWritesFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(base)
	logger.WithField("merchant", "uber").Info("resolved", Field{Key: "category", Value: "transport"})

	out := buf.String()
	assert.Contains(t, out, `"merchant":"uber"`)
	assert.Contains(t, out, `"category":"transport"`)
	assert.Contains(t, out, "resolved")
}

func TestLogrusAdapterWithErrorChains(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(base)
	logger.WithError(errors.New("boom")).WithField("stage", "classifier").Warn("stage failed")

	out := buf.String()
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"stage":"classifier"`)
}

func TestNewLogrusAdapterBadLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("nonsense", "text")
	assert.NotNil(t, logger)
	// Logging must not panic even with the fallback level.
	logger.Info("still works")
}

func TestMockLoggerCaptures(t *testing.T) {
	m := &MockLogger{}
	m.WithField("k", "v").Warn("watch out")

	assert.True(t, m.HasEntry("WARN", "watch out"))
	assert.False(t, m.HasEntry("ERROR", "watch out"))
}
