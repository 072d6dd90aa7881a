package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"recontracker/observability/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"unknown", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "error", ErrorLevel.String())
	assert.Equal(t, "unknown", LogLevel(99).String())
}

func TestJSONLogger_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*JSONLogger, context.Context)
		shouldLog bool
	}{
		{
			name:     "debug level logs debug",
			logLevel: "debug",
			logMethod: func(l *JSONLogger, ctx context.Context) {
				l.Debug(ctx, "test", nil)
			},
			shouldLog: true,
		},
		{
			name:     "info level skips debug",
			logLevel: "info",
			logMethod: func(l *JSONLogger, ctx context.Context) {
				l.Debug(ctx, "test", nil)
			},
			shouldLog: false,
		},
		{
			name:     "error level skips warn",
			logLevel: "error",
			logMethod: func(l *JSONLogger, ctx context.Context) {
				l.Warn(ctx, "test", nil)
			},
			shouldLog: false,
		},
		{
			name:     "error level logs error",
			logLevel: "error",
			logMethod: func(l *JSONLogger, ctx context.Context) {
				l.Error(ctx, "test", errors.New("boom"), nil)
			},
			shouldLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New("test", "test", tt.logLevel, &buf, nil)

			tt.logMethod(logger, context.Background())

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestJSONLogger_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New("recon", "prod", "info", &buf, types.Fields{"version": "1.0.0"})

	ctx := context.WithValue(context.Background(), types.RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, types.TraceIDKey, "trace-456")
	ctx = context.WithValue(ctx, types.RouteKey, "programs.list")

	logger.Info(ctx, "Listed programs", types.Fields{"rows": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "recon", entry["service"])
	assert.Equal(t, "prod", entry["env"])
	assert.Equal(t, "Listed programs", entry["message"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "trace-456", entry["trace_id"])
	assert.Equal(t, "programs.list", entry["route"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, float64(3), entry["rows"])
	assert.NotEmpty(t, entry["timestamp"])
	assert.NotEmpty(t, entry["hostname"])
}

func TestJSONLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", "test", "error", &buf, nil)

	logger.Error(context.Background(), "Insert failed", errors.New("disk full"), types.Fields{
		"table": "programs",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "*errors.errorString", entry["error_type"])
	assert.Equal(t, "programs", entry["table"])
}

func TestJSONLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", "test", "info", &buf, nil)

	scoped := logger.WithFields(types.Fields{"component": "repository"})
	scoped.Info(context.Background(), "Test", types.Fields{"extra": "field"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "repository", entry["component"])
	assert.Equal(t, "field", entry["extra"])

	// The parent logger is unchanged.
	buf.Reset()
	logger.Info(context.Background(), "Parent", nil)
	var parent map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parent))
	_, hasComponent := parent["component"]
	assert.False(t, hasComponent)
}

func TestJSONLogger_ConcurrentWritesStayLineDelimited(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", "test", "info", &buf, nil)
	a := logger.WithFields(types.Fields{"worker": "a"})
	b := logger.WithFields(types.Fields{"worker": "b"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); a.Info(context.Background(), "a", nil) }()
		go func() { defer wg.Done(); b.Info(context.Background(), "b", nil) }()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 100)
	for _, line := range lines {
		var entry map[string]interface{}
		assert.NoError(t, json.Unmarshal([]byte(line), &entry))
	}
}
