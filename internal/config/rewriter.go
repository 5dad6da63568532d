// Package config loads and validates the settings of the simplifier's
// components: the rewriting provider, the HTTP server and instruction presets.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	envconfig "healthinfo-simplifier/pkg/config"
)

// Rewriting providers.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderNoOp   = "noop"
)

// Defaults for the OpenAI-compatible provider point at OpenRouter.
const (
	DefaultOpenAIBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenAIModel   = "google/gemma-3-27b-it:free"
	DefaultClaudeModel   = "claude-sonnet-4-5-20250929"
	DefaultGeminiModel   = "gemini-1.5-flash"
)

// providerKeyEnv lists the provider-specific variables consulted when
// REWRITER_API_KEY is unset.
var providerKeyEnv = map[string][]string{
	ProviderOpenAI: {"OPENROUTER_API_KEY", "OPENAI_API_KEY"},
	ProviderClaude: {"ANTHROPIC_API_KEY"},
	ProviderGemini: {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// RewriterConfig holds the settings of the text rewriting provider.
type RewriterConfig struct {
	// Provider is one of openai, claude, gemini or noop. Default: openai.
	Provider string

	// APIKey authenticates against the provider. Required unless Provider is noop.
	APIKey string

	// Model is the provider model identifier. Defaults depend on Provider.
	Model string

	// BaseURL overrides the API endpoint of the openai provider, which lets
	// any OpenAI-compatible gateway serve requests. Default: OpenRouter.
	BaseURL string

	// MaxTokens bounds the length of the rewritten text. Default: 2048.
	MaxTokens int

	// Timeout bounds one rewrite including retries. Default: 60s.
	Timeout time.Duration

	// MaxInputChars rejects longer texts before calling the provider. Default: 20000.
	MaxInputChars int

	// RateLimit is the sustained number of provider calls per second. Default: 1.
	RateLimit float64

	// RateBurst is the number of calls allowed in a burst. Default: 3.
	RateBurst int
}

// DefaultRewriterConfig returns defaults for provider, without an API key.
func DefaultRewriterConfig(provider string) RewriterConfig {
	cfg := RewriterConfig{
		Provider:      provider,
		MaxTokens:     2048,
		Timeout:       60 * time.Second,
		MaxInputChars: 20000,
		RateLimit:     1,
		RateBurst:     3,
	}
	switch provider {
	case ProviderOpenAI:
		cfg.BaseURL = DefaultOpenAIBaseURL
		cfg.Model = DefaultOpenAIModel
	case ProviderClaude:
		cfg.Model = DefaultClaudeModel
	case ProviderGemini:
		cfg.Model = DefaultGeminiModel
	case ProviderNoOp:
		cfg.Model = ProviderNoOp
	}
	return cfg
}

// LoadRewriterConfig reads the REWRITER_* variables and validates the
// result. A missing API key for a real provider is an error, so a
// misconfigured deployment fails at startup instead of on the first request.
//
// Environment variables:
//   - REWRITER_PROVIDER (openai, claude, gemini, noop)
//   - REWRITER_API_KEY, falling back to OPENROUTER_API_KEY/OPENAI_API_KEY,
//     ANTHROPIC_API_KEY or GEMINI_API_KEY/GOOGLE_API_KEY per provider
//   - REWRITER_MODEL, REWRITER_BASE_URL, REWRITER_MAX_TOKENS, REWRITER_TIMEOUT
//   - REWRITER_MAX_INPUT_CHARS, REWRITER_RATE_LIMIT, REWRITER_RATE_BURST
func LoadRewriterConfig() (*RewriterConfig, error) {
	provider := strings.ToLower(strings.TrimSpace(envconfig.GetEnvString("REWRITER_PROVIDER", ProviderOpenAI)))
	def := DefaultRewriterConfig(provider)

	cfg := &RewriterConfig{
		Provider:      provider,
		APIKey:        lookupAPIKey(provider),
		Model:         envconfig.GetEnvString("REWRITER_MODEL", def.Model),
		BaseURL:       envconfig.GetEnvString("REWRITER_BASE_URL", def.BaseURL),
		MaxTokens:     envconfig.GetEnvInt("REWRITER_MAX_TOKENS", def.MaxTokens),
		Timeout:       envconfig.GetEnvDuration("REWRITER_TIMEOUT", def.Timeout),
		MaxInputChars: envconfig.GetEnvInt("REWRITER_MAX_INPUT_CHARS", def.MaxInputChars),
		RateLimit:     envconfig.GetEnvFloat("REWRITER_RATE_LIMIT", def.RateLimit),
		RateBurst:     envconfig.GetEnvInt("REWRITER_RATE_BURST", def.RateBurst),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rewriter configuration: %w", err)
	}
	return cfg, nil
}

func lookupAPIKey(provider string) string {
	if key := strings.TrimSpace(envconfig.GetEnvString("REWRITER_API_KEY", "")); key != "" {
		return key
	}
	for _, env := range providerKeyEnv[provider] {
		if key := strings.TrimSpace(envconfig.GetEnvString(env, "")); key != "" {
			return key
		}
	}
	return ""
}

// Validate checks configuration correctness.
func (c *RewriterConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderGemini, ProviderNoOp:
	default:
		return fmt.Errorf("REWRITER_PROVIDER %q is not supported (use openai, claude, gemini or noop)", c.Provider)
	}

	if c.Provider != ProviderNoOp && c.APIKey == "" {
		return fmt.Errorf("REWRITER_API_KEY is required for provider %q", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("REWRITER_MODEL cannot be empty")
	}

	if c.Provider == ProviderOpenAI && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("REWRITER_BASE_URL must be an http(s) URL, got %q", c.BaseURL)
	}

	return errors.Join(
		envconfig.InRange("REWRITER_MAX_TOKENS", c.MaxTokens, 1, 32768),
		envconfig.InRange("REWRITER_TIMEOUT", c.Timeout, time.Second, 5*time.Minute),
		envconfig.AtLeast("REWRITER_MAX_INPUT_CHARS", c.MaxInputChars, 100),
		envconfig.Positive("REWRITER_RATE_LIMIT", c.RateLimit),
		envconfig.AtLeast("REWRITER_RATE_BURST", c.RateBurst, 1),
	)
}

// String describes the configuration without the API key.
func (c *RewriterConfig) String() string {
	return fmt.Sprintf("provider=%s model=%s base_url=%s api_key_set=%t",
		c.Provider, c.Model, c.BaseURL, c.APIKey != "")
}
