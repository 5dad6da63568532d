package rewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"healthinfo-simplifier/internal/config"
	"healthinfo-simplifier/internal/resilience/retry"
)

// Claude rewrites text with Anthropic's Messages API.
type Claude struct {
	client anthropic.Client
	cfg    config.RewriterConfig
	guard  *guard
}

// NewClaude creates a Claude rewriter. A non-empty cfg.BaseURL overrides the
// API endpoint.
func NewClaude(cfg *config.RewriterConfig, opts ...Option) *Claude {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retries are handled by the guard.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("initialized claude rewriter",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client: anthropic.NewClient(clientOpts...),
		cfg:    *cfg,
		guard:  newGuard(cfg, opts...),
	}
}

// Name implements Rewriter.
func (c *Claude) Name() string { return config.ProviderClaude }

// Rewrite implements Rewriter.
func (c *Claude) Rewrite(ctx context.Context, req Request) (string, error) {
	return c.guard.rewrite(ctx, req, c.complete)
}

func (c *Claude) complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", classifyClaudeError(err))
	}

	var b strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

func classifyClaudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		httpErr := &retry.HTTPError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		if apiErr.Response != nil {
			httpErr.RetryAfter = retry.ParseRetryAfter(apiErr.Response.Header.Get("Retry-After"), time.Now())
		}
		return httpErr
	}
	return err
}

// CircuitState implements CircuitReporter.
func (c *Claude) CircuitState() string { return c.guard.circuitState() }
