package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/shared/logger"
)

func newTestLogger(t *testing.T, format, level string) (*logger.HTTPLogger, string) {
	t.Helper()

	dir := t.TempDir()
	l := logger.New(logger.Options{Dir: dir, File: "http.log", Level: level, Format: format})
	return l, filepath.Join(dir, "http.log")
}

func TestNew_CreatesLogFileAndWrites(t *testing.T) {
	l, logPath := newTestLogger(t, "console", "info")

	l.Info("test message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	s := string(b)

	require.Regexp(t, regexp.MustCompile(`\btest message\b`), s)
	// формат времени: "HH:MM:SS DD.MM.YYYY"
	require.Regexp(t, regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`), s)
}

func TestHTTPLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	l, logPath := newTestLogger(t, "console", "info")

	l.LogRequest("GET", "/api/todos", 200, 20, 158.5463)
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	s := string(b)

	for _, sub := range []string{
		"HTTP request",
		"method", "GET",
		"uri", "/api/todos",
		"status", "200",
		"response_size", "20",
		"duration_ms",
	} {
		require.Contains(t, s, sub)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	l, logPath := newTestLogger(t, "json", "info")

	l.LogRequest("DELETE", "/api/users/1", 400, 5, 1)
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)

	line := strings.TrimSpace(string(b))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	require.Equal(t, "HTTP request", entry["msg"])
	require.Equal(t, "DELETE", entry["method"])
	require.EqualValues(t, 400, entry["status"])
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	l, logPath := newTestLogger(t, "console", "warn")

	l.Info("skipped message")
	l.Warn("kept message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	s := string(b)

	require.NotContains(t, s, "skipped message")
	require.Contains(t, s, "kept message")
}
