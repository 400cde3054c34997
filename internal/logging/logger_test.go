package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "JSON")

	logger.Info("Session started", "source_id", "task.ttt")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Session started", entry["msg"])
	assert.Equal(t, "task.ttt", entry["source_id"])
	assert.Equal(t, AppName, entry["app"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "")

	logger.Info("Saved task file")

	assert.Contains(t, buf.String(), "app="+AppName)
	assert.Contains(t, buf.String(), `msg="Saved task file"`)
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"DEBUG", true, true, true},
		{"info", false, true, true},
		{" warn ", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
		{"", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level, "text")

			assert.Equal(t, tt.debugSeen, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.infoSeen, logger.Enabled(context.Background(), slog.LevelInfo))
			assert.Equal(t, tt.warnSeen, logger.Enabled(context.Background(), slog.LevelWarn))
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(NewLogger(&buf, "info", "json"), "store")

	logger.Info("Loaded task file")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, AppName, entry["app"])
}

func TestWithComponent_NilUsesDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(NewLogger(&buf, "info", "text"))

	WithComponent(nil, "dashboard").Info("Task opened")
	assert.Contains(t, buf.String(), "component=dashboard")
}

func TestInitLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	InitLogger("debug", "text")

	require.NotNil(t, Logger)
	assert.Same(t, Logger, slog.Default())
	assert.True(t, Logger.Enabled(context.Background(), slog.LevelDebug))
}
