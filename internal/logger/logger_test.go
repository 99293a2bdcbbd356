package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureJSON подменяет глобальный логгер на JSON в буфер
func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log
	t.Cleanup(func() { log = prev })

	var buf bytes.Buffer
	log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func sourceFile(t *testing.T, entry map[string]any) string {
	t.Helper()
	src, ok := entry["source"].(map[string]any)
	require.True(t, ok, "source missing: %v", entry)
	return filepath.Base(src["file"].(string))
}

func TestWrappers_ReportCallerSource(t *testing.T) {
	buf := captureJSON(t)
	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), 7)

	Info("plain")
	CtxWarn(ctx, "scoped", "key", "value")
	CtxWithError(ctx, "failed", errors.New("boom"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "logger_test.go", sourceFile(t, e))
	}
	assert.Equal(t, "req-1", entries[1]["request_id"])
	assert.Equal(t, "7", entries[1]["user_id"])
	assert.Equal(t, "value", entries[1]["key"])
	assert.Equal(t, "boom", entries[2]["error"])
}

func TestDBLog(t *testing.T) {
	buf := captureJSON(t)

	DBLog("count_active_broadcasts", 15*time.Millisecond, nil)
	DBLog("count_active_broadcasts", time.Millisecond, errors.New("no such table"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "DEBUG", entries[0]["level"])
	assert.Equal(t, float64(15), entries[0]["duration_ms"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "no such table", entries[1]["error"])
	assert.Equal(t, "logger_test.go", sourceFile(t, entries[1]))
}

func TestLevelFiltering(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })
	var buf bytes.Buffer
	log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	Debug("hidden")
	Info("hidden")
	Warn("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
}
