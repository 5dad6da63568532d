// Package rewriter rewrites health education text through an LLM provider.
// It includes adapters for OpenAI-compatible endpoints (OpenRouter by
// default), Claude and Gemini, each guarded by a circuit breaker, retries
// with backoff and an outbound rate limiter.
package rewriter

import (
	"context"
	"errors"

	"healthinfo-simplifier/internal/domain/entity"
)

// FallbackResponse is returned when a provider answers with no text.
const FallbackResponse = "Could not generate a response."

var (
	// ErrUnavailable is returned while the provider circuit breaker is open.
	ErrUnavailable = errors.New("rewriting service unavailable")

	// ErrRateLimited is returned when the outbound rate limiter cannot
	// admit a call before the request deadline.
	ErrRateLimited = errors.New("rewrite rate limit exceeded")
)

// Rewriter rewrites text according to an instruction.
type Rewriter interface {
	// Rewrite returns the rewritten text.
	Rewrite(ctx context.Context, req Request) (string, error)

	// Name identifies the provider, e.g. "openai".
	Name() string
}

// Request describes one rewrite.
type Request struct {
	// Text is the source text.
	Text string

	// Instruction tells the model what kind of rewrite to perform,
	// e.g. "Simplify this text to a Grade 6 reading level."
	Instruction string

	// UseBullets allows bullet point formatting in the result.
	UseBullets bool

	// TargetLanguage is "Original", "English" or a translation target.
	TargetLanguage string
}

// Validate checks the request before any provider call.
func (r Request) Validate(maxInputChars int) error {
	if err := entity.ValidateText("text", r.Text, maxInputChars); err != nil {
		return err
	}
	return entity.ValidateText("instruction", r.Instruction, 0)
}

// CircuitReporter is implemented by providers guarded by a circuit breaker.
type CircuitReporter interface {
	// CircuitState returns "closed", "half-open" or "open".
	CircuitState() string
}
