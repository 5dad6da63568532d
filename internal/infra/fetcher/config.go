package fetcher

import (
	"errors"
	"fmt"
	"time"

	envconfig "healthinfo-simplifier/pkg/config"
)

// Config controls how web pages are fetched for analysis.
type Config struct {
	// Timeout bounds a single HTTP request. Default: 10s.
	Timeout time.Duration

	// MaxBodySize rejects larger responses while reading, regardless of
	// Content-Length. Default: 5MB.
	MaxBodySize int64

	// MaxRedirects bounds redirect chains. Every target is validated again.
	// Default: 5.
	MaxRedirects int

	// DenyPrivateIPs blocks hosts resolving to private, loopback or
	// link-local addresses. Disable only in tests. Default: true.
	DenyPrivateIPs bool

	// UserAgent identifies the fetcher to remote sites.
	UserAgent string
}

// DefaultConfig returns the default page fetch configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "HealthInfoSimplifierBot/1.0",
	}
}

// Validate checks every limit against its allowed range.
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return errors.New("PAGE_FETCH_USER_AGENT cannot be empty")
	}
	return errors.Join(
		envconfig.InRange("PAGE_FETCH_TIMEOUT", c.Timeout, 100*time.Millisecond, 2*time.Minute),
		envconfig.InRange("PAGE_FETCH_MAX_BODY_SIZE", c.MaxBodySize, 1<<10, 50<<20),
		envconfig.InRange("PAGE_FETCH_MAX_REDIRECTS", c.MaxRedirects, 0, 10),
	)
}

// LoadConfigFromEnv reads PAGE_FETCH_TIMEOUT, PAGE_FETCH_MAX_BODY_SIZE,
// PAGE_FETCH_MAX_REDIRECTS, PAGE_FETCH_DENY_PRIVATE_IPS and
// PAGE_FETCH_USER_AGENT on top of DefaultConfig.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Timeout:        envconfig.GetEnvDuration("PAGE_FETCH_TIMEOUT", def.Timeout),
		MaxBodySize:    int64(envconfig.GetEnvInt("PAGE_FETCH_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:   envconfig.GetEnvInt("PAGE_FETCH_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs: envconfig.GetEnvBool("PAGE_FETCH_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		UserAgent:      envconfig.GetEnvString("PAGE_FETCH_USER_AGENT", def.UserAgent),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("page fetch config: %w", err)
	}
	return cfg, nil
}
