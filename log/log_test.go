package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudLoggingHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCloudLoggingHandler(&buf, slog.LevelInfo)).
		With(slog.String(ChatIDLogField, "chat_U1_U2"))

	ctx := WithRunID(context.Background(), "run-1")
	logger.DebugContext(ctx, "hidden")
	logger.WarnContext(ctx, "member seeded", slog.Int("unreadCount", 7))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARNING", entry["severity"])
	assert.Equal(t, "member seeded", entry["message"])
	assert.Equal(t, "chat_U1_U2", entry[ChatIDLogField])
	assert.Equal(t, float64(7), entry["unreadCount"])
	assert.Equal(t, "run-1", entry[RunIDLogField])
	assert.NotContains(t, entry, "logging.googleapis.com/trace")
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelInfo, "INFO"},
		{slog.LevelWarn, "WARNING"},
		{slog.LevelError, "ERROR"},
		{slog.LevelError + 4, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := severity(tt.level); got != tt.expected {
				t.Errorf("severity(%v) = %q; want %q", tt.level, got, tt.expected)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	logger := slog.New(NewCloudLoggingHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, LoggerFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(context.Background()))
}
