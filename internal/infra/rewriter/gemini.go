package rewriter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"healthinfo-simplifier/internal/config"
	"healthinfo-simplifier/internal/resilience/retry"
)

// Gemini rewrites text with Google's Gemini models.
type Gemini struct {
	client *genai.Client
	cfg    config.RewriterConfig
	guard  *guard
}

// NewGemini creates a Gemini rewriter. Call Close when done.
func NewGemini(ctx context.Context, cfg *config.RewriterConfig, opts ...Option) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	slog.Info("initialized gemini rewriter",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Gemini{
		client: client,
		cfg:    *cfg,
		guard:  newGuard(cfg, opts...),
	}, nil
}

// Name implements Rewriter.
func (g *Gemini) Name() string { return config.ProviderGemini }

// Rewrite implements Rewriter.
func (g *Gemini) Rewrite(ctx context.Context, req Request) (string, error) {
	return g.guard.rewrite(ctx, req, g.complete)
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *Gemini) complete(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(0.2)
	model.SetMaxOutputTokens(int32(g.cfg.MaxTokens)) // #nosec G115 -- bounded by config validation

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", classifyGeminiError(err))
	}
	return geminiText(resp), nil
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			parts = append(parts, string(t))
		}
	}
	return strings.Join(parts, "")
}

// grpcHTTPStatus maps the gRPC codes Gemini returns to HTTP statuses.
var grpcHTTPStatus = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Unauthenticated:   http.StatusUnauthorized,
	codes.PermissionDenied:  http.StatusForbidden,
	codes.NotFound:          http.StatusNotFound,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.Internal:          http.StatusInternalServerError,
	codes.Unknown:           http.StatusInternalServerError,
	codes.Unavailable:       http.StatusServiceUnavailable,
	codes.DeadlineExceeded:  http.StatusGatewayTimeout,
}

func classifyGeminiError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &retry.HTTPError{StatusCode: gErr.Code, Message: gErr.Message}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.HTTPCode(); code > 0 {
			return &retry.HTTPError{StatusCode: code, Message: apiErr.Error()}
		}
		if st := apiErr.GRPCStatus(); st != nil {
			if code, ok := grpcHTTPStatus[st.Code()]; ok {
				return &retry.HTTPError{StatusCode: code, Message: st.Message()}
			}
		}
	}
	return err
}

// CircuitState implements CircuitReporter.
func (g *Gemini) CircuitState() string { return g.guard.circuitState() }
