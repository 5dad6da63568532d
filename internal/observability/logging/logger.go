package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"healthinfo-simplifier/internal/handler/http/requestid"
	"healthinfo-simplifier/pkg/config"
)

// Output formats accepted by LOG_FORMAT.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config controls logger construction.
type Config struct {
	Level  slog.Level
	Format string
	Output io.Writer
}

// LoadConfigFromEnv reads LOG_LEVEL (debug, info, warn, error) and
// LOG_FORMAT (json, text). Output is stdout.
func LoadConfigFromEnv() Config {
	return Config{
		Level:  ParseLevel(config.GetEnvString("LOG_LEVEL", "info")),
		Format: strings.ToLower(config.GetEnvString("LOG_FORMAT", FormatJSON)),
		Output: os.Stdout,
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from cfg. Source locations are attached at debug level.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == FormatText {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}

// NewLogger builds a logger from the environment.
func NewLogger() *slog.Logger {
	return New(LoadConfigFromEnv())
}

// WithRequestID returns logger annotated with the request ID stored in ctx.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
