package rewriter

import (
	"context"
	"fmt"

	"healthinfo-simplifier/internal/config"
)

// New builds the rewriter selected by cfg.Provider.
// The returned close function releases provider resources.
func New(ctx context.Context, cfg *config.RewriterConfig, opts ...Option) (Rewriter, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg, opts...), noClose, nil
	case config.ProviderClaude:
		return NewClaude(cfg, opts...), noClose, nil
	case config.ProviderGemini:
		g, err := NewGemini(ctx, cfg, opts...)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	case config.ProviderNoOp:
		return NewNoOp(cfg.MaxInputChars), noClose, nil
	default:
		return nil, nil, fmt.Errorf("unsupported rewriter provider %q", cfg.Provider)
	}
}
