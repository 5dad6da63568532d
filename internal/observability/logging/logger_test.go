package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthinfo-simplifier/internal/handler/http/requestid"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.NotNil(t, cfg.Output)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Info("analysis completed", slog.Int("words", 12))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analysis completed", entry["msg"])
	assert.Equal(t, float64(12), entry["words"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("skipped")
	logger.Warn("non-english text", slog.String("language", "Spanish"))

	out := buf.String()
	assert.Contains(t, out, "msg=\"non-english text\"")
	assert.Contains(t, out, "language=Spanish")
	assert.NotContains(t, out, "skipped")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	t.Run("with request id", func(t *testing.T) {
		buf.Reset()
		ctx := requestid.WithRequestID(context.Background(), "req-123")
		WithRequestID(ctx, base).Info("hello")
		assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	})

	t.Run("without request id", func(t *testing.T) {
		buf.Reset()
		logger := WithRequestID(context.Background(), base)
		assert.Same(t, base, logger)
	})
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	logger := New(Config{Output: &bytes.Buffer{}})
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
