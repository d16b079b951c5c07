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

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"chatty", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("warn_level_drops_info", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelWarn, Output: &buf})
		t.Cleanup(func() { Init(DefaultConfig()) })

		Info("quiet")
		assert.Empty(t, buf.String())
		Warn("loud")
		assert.Contains(t, buf.String(), "loud")
		assert.False(t, Debug)
	})

	t.Run("debug_sets_flag", func(t *testing.T) {
		captureJSON(t)
		assert.True(t, Debug)
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		t.Cleanup(func() { Init(DefaultConfig()) })
		assert.NotNil(t, Logger())
	})
}

func TestLoggingFunctions(t *testing.T) {
	buf := captureJSON(t)

	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"info", Info, "INFO"},
		{"warn", Warn, "WARN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("message", KeyTask, "t1")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.want, entry["level"])
			assert.Equal(t, "t1", entry[KeyTask])
		})
	}
}

func TestComponent(t *testing.T) {
	buf := captureJSON(t)
	Component("storage").Info("opened")
	assert.Contains(t, buf.String(), `"component":"storage"`)
}

func TestLogOperation(t *testing.T) {
	buf := captureJSON(t)
	LogOperation("task.create", KeyProject, "p1")
	assert.Contains(t, buf.String(), `"op":"task.create"`)
	assert.Contains(t, buf.String(), `"project":"p1"`)
}

// =============================================================================
// Context Tests
// =============================================================================

func TestGenerateRequestID(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	assert.Len(t, id1, 8)
	assert.NotEqual(t, id1, id2)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "abc", RequestIDFromContext(WithRequestID(context.Background(), "abc")))
	assert.Empty(t, RequestIDFromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Empty(t, RequestIDFromContext(nil))
	assert.Len(t, RequestIDFromContext(NewRequestContext("")), 8)
}

func TestNewRequestContext(t *testing.T) {
	ctx := NewRequestContext("workflowr timer log")
	assert.Equal(t, "workflowr timer log", CommandFromContext(ctx))
	assert.Len(t, RequestIDFromContext(ctx), 8)

	assert.Empty(t, CommandFromContext(NewRequestContext("")))
}

func TestContextLogging(t *testing.T) {
	buf := captureJSON(t)
	ctx := WithCommand(WithRequestID(context.Background(), "req-1"), "workflowr report")

	WarnContext(ctx, "load failed", KeyCollection, "tasks")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"command":"workflowr report"`)
	assert.Contains(t, buf.String(), `"collection":"tasks"`)

	buf.Reset()
	DebugContext(WithRequestID(context.Background(), "req-2"), "saved", KeyProject, "p1")
	assert.Contains(t, buf.String(), `"project":"p1"`)
	assert.Contains(t, buf.String(), `"request_id":"req-2"`)
	assert.NotContains(t, buf.String(), `"command"`)
}
