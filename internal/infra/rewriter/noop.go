package rewriter

import (
	"context"

	"healthinfo-simplifier/internal/config"
)

// NoOp returns the source text unchanged. It lets the API and CLI run
// without provider credentials during development.
type NoOp struct {
	maxInputChars int
}

// NewNoOp creates a NoOp rewriter.
func NewNoOp(maxInputChars int) *NoOp {
	return &NoOp{maxInputChars: maxInputChars}
}

// Name implements Rewriter.
func (n *NoOp) Name() string { return config.ProviderNoOp }

// Rewrite implements Rewriter.
func (n *NoOp) Rewrite(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(n.maxInputChars); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return cleanCompletion(req.Text), nil
}
