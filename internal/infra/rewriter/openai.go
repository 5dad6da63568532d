package rewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"healthinfo-simplifier/internal/config"
	"healthinfo-simplifier/internal/resilience/retry"
)

// OpenAI rewrites text through an OpenAI-compatible chat completions API.
// With the default base URL it talks to OpenRouter.
type OpenAI struct {
	client *openai.Client
	cfg    config.RewriterConfig
	guard  *guard
}

// NewOpenAI creates an OpenAI-compatible rewriter.
func NewOpenAI(cfg *config.RewriterConfig, opts ...Option) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("initialized openai rewriter",
		slog.String("model", cfg.Model),
		slog.String("base_url", clientCfg.BaseURL))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    *cfg,
		guard:  newGuard(cfg, opts...),
	}
}

// Name implements Rewriter.
func (o *OpenAI) Name() string { return config.ProviderOpenAI }

// Rewrite implements Rewriter.
func (o *OpenAI) Rewrite(ctx context.Context, req Request) (string, error) {
	return o.guard.rewrite(ctx, req, o.complete)
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.cfg.Model,
		MaxTokens: o.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", classifyOpenAIError(err))
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError exposes the HTTP status of SDK errors to retry.IsRetryable.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return err
}

// CircuitState implements CircuitReporter.
func (o *OpenAI) CircuitState() string { return o.guard.circuitState() }
