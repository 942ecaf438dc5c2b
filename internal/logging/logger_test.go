package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbosityLevel(t *testing.T) {
	testCases := []struct {
		verbosity int
		expected  slog.Level
	}{
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, VerbosityLevel(tc.verbosity), "verbosity %d", tc.verbosity)
	}
}

func TestLoggerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Options{Level: slog.LevelWarn, NoColor: true, Output: &buf})

	logger.Info("should not appear")
	logger.Debug("should not appear either")
	assert.Empty(t, buf.String())

	logger.Warn("visible warning")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "visible warning")
}

func TestLoggerComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Options{Level: LevelTrace, NoColor: true, Output: &buf})

	logger.WithComponent("watcher").Info("watching path", "path", "src")

	out := buf.String()
	assert.Contains(t, out, "watcher: watching path")
	assert.Contains(t, out, "path=src")
}

func TestLoggerErrorAttachesError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Options{Level: slog.LevelWarn, NoColor: true, Output: &buf})

	logger.Error(assert.AnError, "build failed")

	assert.Contains(t, buf.String(), "build failed")
	assert.Contains(t, buf.String(), "error=")
}

func TestLoggerNoColorStripsANSI(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Options{Level: slog.LevelInfo, NoColor: true, Output: &buf})
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "\033[")

	buf.Reset()
	colored := New(&Options{Level: slog.LevelInfo, NoColor: false, Output: &buf})
	colored.Info("colored")
	assert.Contains(t, buf.String(), "\033[")
}
