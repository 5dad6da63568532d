package config

import (
	"fmt"
	"time"

	envconfig "healthinfo-simplifier/pkg/config"
)

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	// WriteTimeout must leave room for a rewrite call.
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	Version         string
	TracingEnabled  bool
}

// LoadServerConfig reads HTTP_ADDR, HTTP_*_TIMEOUT, HTTP_MAX_BODY_BYTES,
// APP_VERSION and TRACING_ENABLED.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:              envconfig.GetEnvString("HTTP_ADDR", ":8080"),
		ReadHeaderTimeout: envconfig.GetEnvDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       envconfig.GetEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      envconfig.GetEnvDuration("HTTP_WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:       envconfig.GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   envconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:      int64(envconfig.GetEnvInt("HTTP_MAX_BODY_BYTES", 1<<20)),
		Version:           envconfig.GetEnvString("APP_VERSION", "dev"),
		TracingEnabled:    envconfig.GetEnvBool("TRACING_ENABLED", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("HTTP_ADDR cannot be empty")
	}
	for name, d := range map[string]time.Duration{
		"HTTP_READ_HEADER_TIMEOUT": c.ReadHeaderTimeout,
		"HTTP_READ_TIMEOUT":        c.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":       c.WriteTimeout,
		"HTTP_IDLE_TIMEOUT":        c.IdleTimeout,
		"HTTP_SHUTDOWN_TIMEOUT":    c.ShutdownTimeout,
	} {
		if err := envconfig.Positive(name, d); err != nil {
			return err
		}
	}
	return envconfig.InRange("HTTP_MAX_BODY_BYTES", c.MaxBodyBytes, 1024, 32<<20)
}
