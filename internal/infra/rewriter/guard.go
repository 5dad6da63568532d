package rewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"healthinfo-simplifier/internal/config"
	"healthinfo-simplifier/internal/resilience/circuitbreaker"
	"healthinfo-simplifier/internal/resilience/retry"
	"healthinfo-simplifier/internal/utils/text"
)

// completeFunc sends a rendered prompt to a provider and returns its raw
// answer. Errors with an HTTP status must carry a *retry.HTTPError.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// Option customizes a provider.
type Option func(*guard)

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(g *guard) { g.retryPolicy = p }
}

// WithCircuitBreaker overrides the circuit breaker settings.
func WithCircuitBreaker(cfg circuitbreaker.Config) Option {
	return func(g *guard) { g.breaker = circuitbreaker.New(cfg) }
}

// WithMetrics replaces the Prometheus recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(g *guard) { g.metrics = m }
}

// WithRateLimiter replaces the limiter built from the configuration.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(g *guard) { g.limiter = l }
}

// guard holds the reliability wrapping shared by every provider.
type guard struct {
	provider      string
	model         string
	timeout       time.Duration
	maxInputChars int
	breaker       *circuitbreaker.Breaker
	retryPolicy   retry.Policy
	limiter       *rate.Limiter
	metrics       MetricsRecorder
}

func newGuard(cfg *config.RewriterConfig, opts ...Option) *guard {
	g := &guard{
		provider:      cfg.Provider,
		model:         cfg.Model,
		timeout:       cfg.Timeout,
		maxInputChars: cfg.MaxInputChars,
		breaker:       circuitbreaker.New(circuitbreaker.ForRewriter(cfg.Provider)),
		retryPolicy:   retry.ForRewriter(),
		limiter:       rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		metrics:       NewPrometheusMetrics(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// rewrite validates req, then runs complete through the rate limiter, the
// circuit breaker and the retry loop under the configured timeout.
func (g *guard) rewrite(ctx context.Context, req Request, complete completeFunc) (string, error) {
	if err := req.Validate(g.maxInputChars); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := BuildPrompt(req)
	var result string

	retryErr := retry.Do(ctx, g.retryPolicy, g.provider+" rewrite", func(ctx context.Context) error {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}

		out, err := circuitbreaker.Call(g.breaker, func() (string, error) {
			return g.call(ctx, req, prompt, complete)
		})
		if errors.Is(err, circuitbreaker.ErrOpen) {
			slog.WarnContext(ctx, "rewriter circuit breaker open, request rejected",
				slog.String("circuit", g.breaker.Name()),
				slog.String("state", g.breaker.State()))
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if err != nil {
			return err
		}
		result = out
		return nil
	})

	if retryErr != nil {
		g.metrics.RecordRequest(g.provider, outcomeOf(retryErr))
		return "", fmt.Errorf("%s rewrite failed: %w", g.provider, retryErr)
	}

	outcome := OutcomeSuccess
	if result == FallbackResponse {
		outcome = OutcomeFallback
	}
	g.metrics.RecordRequest(g.provider, outcome)
	return result, nil
}

// call performs one provider call without retry or circuit breaker.
func (g *guard) call(ctx context.Context, req Request, prompt string, complete completeFunc) (string, error) {
	inputLength := text.CountRunes(req.Text)

	slog.InfoContext(ctx, "starting rewrite",
		slog.String("provider", g.provider),
		slog.String("model", g.model),
		slog.Int("input_length", inputLength),
		slog.String("target_language", req.TargetLanguage),
		slog.Bool("use_bullets", req.UseBullets))

	start := time.Now()
	raw, err := complete(ctx, prompt)
	duration := time.Since(start)
	g.metrics.RecordDuration(g.provider, duration)

	if err != nil {
		slog.ErrorContext(ctx, "rewrite failed",
			slog.String("provider", g.provider),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", err
	}

	result := cleanCompletion(raw)
	if result == FallbackResponse {
		slog.WarnContext(ctx, "provider returned empty completion",
			slog.String("provider", g.provider),
			slog.Duration("duration", duration))
	}

	outputLength := text.CountRunes(result)
	g.metrics.RecordLengths(g.provider, inputLength, outputLength)

	slog.InfoContext(ctx, "rewrite completed",
		slog.String("provider", g.provider),
		slog.Int("output_length", outputLength),
		slog.Duration("duration", duration))

	return result, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	default:
		return OutcomeError
	}
}

// circuitState returns "closed", "half-open" or "open".
func (g *guard) circuitState() string {
	return g.breaker.State()
}
