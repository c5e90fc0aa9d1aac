package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vijay-prabhu/subjectline/internal/config"
)

func TestNewTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewTo(&buf, config.LoggingConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("analysis saved", zap.String("id", "abc"), zap.Int("score", 70))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "analysis saved", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.EqualValues(t, 70, entry["score"])
	assert.Contains(t, entry, "ts")
}

func TestNewTo_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewTo(&buf, config.LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("history trimmed", zap.Int("removed", 2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "history trimmed")
	assert.Contains(t, out, `"removed": 2`)
}

func TestNewTo_InvalidLevel(t *testing.T) {
	_, err := NewTo(&bytes.Buffer{}, config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.WarnLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"ERROR", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
