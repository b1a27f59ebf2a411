package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected config.LogLevel
	}{
		{"off lowercase", "off", config.LogLevelOff},
		{"off uppercase", "OFF", config.LogLevelOff},
		{"none", "none", config.LogLevelOff},
		{"error", "error", config.LogLevelError},
		{"info", "info", config.LogLevelInfo},
		{"debug uppercase", "DEBUG", config.LogLevelDebug},
		{"with whitespace", "  debug  ", config.LogLevelDebug},
		{"invalid returns error", "invalid", config.LogLevelError},
		{"empty returns error", "", config.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, config.ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "off", config.LogLevelOff.String())
	assert.Equal(t, "error", config.LogLevelError.String())
	assert.Equal(t, "info", config.LogLevelInfo.String())
	assert.Equal(t, "debug", config.LogLevelDebug.String())
	assert.Equal(t, "error", config.LogLevel(99).String())
}

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := config.NewWriterLogger(config.LogLevelError, &buf)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden too")
	logger.Error("shown %s", "here")

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "shown here", lines[0]["message"])
	assert.Contains(t, lines[0], "time")
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := config.NewWriterLogger(config.LogLevelError, &buf)
	logger.SetLevel(config.LogLevelDebug)
	assert.Equal(t, config.LogLevelDebug, logger.Level())

	logger.Debug("now visible")
	assert.Len(t, decodeLines(t, buf.String()), 1)
}

func TestLogger_WithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := config.NewWriterLogger(config.LogLevelDebug, &buf).With("service")
	logger.Debug("opened wallet %q", "main")

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "service", lines[0]["component"])
	assert.Equal(t, `opened wallet "main"`, lines[0]["message"])
}

func TestNewLogger_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "xrbwallet.log")
	logger, err := config.NewLogger(config.LogLevelDebug, path)
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) //nolint:gosec // G304: Test path from t.TempDir()
	require.NoError(t, err)
	lines := decodeLines(t, string(data))
	require.Len(t, lines, 1)
	assert.Equal(t, "to file", lines[0]["message"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewConsoleFileLogger(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "xrbwallet.log")
	logger, err := config.NewConsoleFileLogger(config.LogLevelError, path)
	require.NoError(t, err)
	logger.Error("plain line")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) //nolint:gosec // G304: Test path from t.TempDir()
	require.NoError(t, err)
	assert.Contains(t, string(data), "plain line")
	assert.NotContains(t, string(data), `"message"`)
}

func TestNewLogger_OffOrNoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := config.NewLogger(config.LogLevelOff, filepath.Join(dir, "never.log"))
	require.NoError(t, err)
	logger.Error("dropped")
	require.NoError(t, logger.Close())

	_, err = os.Stat(filepath.Join(dir, "never.log"))
	require.ErrorIs(t, err, os.ErrNotExist)

	logger, err = config.NewLogger(config.LogLevelDebug, "")
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelOff, logger.Level())
}

func TestNullLogger(t *testing.T) {
	t.Parallel()

	logger := config.NullLogger()
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x")
		logger.Error("x")
		_ = logger.With("c")
		_ = logger.Close()
	})
}
