package simplify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/infra/rewriter"
	"healthinfo-simplifier/internal/observability/metrics"
	"healthinfo-simplifier/internal/observability/slo"
	"healthinfo-simplifier/internal/observability/tracing"
	"healthinfo-simplifier/internal/readability"
	"healthinfo-simplifier/internal/repository"
)

// WarningTranslated is attached to outputs in a language other than the
// input's.
const WarningTranslated = "Readability metrics (Flesch-Kincaid) are designed for English. Scores for translated text may not be accurate."

// Input describes one rewrite request.
type Input struct {
	// Text is the text to rewrite. For chain presets it may be left empty
	// when PreviousID is set.
	Text string

	// Preset names a configured preset. Empty means PresetSimplify, or
	// PresetCustom when Instruction is set.
	Preset string

	// Instruction overrides the preset instruction.
	Instruction string

	UseBullets bool

	// Language is "Original", "English" or a supported translation target.
	// Empty keeps the previous language for chain presets and means
	// "Original" otherwise.
	Language string

	// PreviousID points at a history entry whose result a chain preset
	// should rework.
	PreviousID string
}

// Output is a completed rewrite with before and after readability.
type Output struct {
	ID          string                 `json:"id"`
	Preset      string                 `json:"preset"`
	Instruction string                 `json:"instruction"`
	Language    string                 `json:"language"`
	Provider    string                 `json:"provider"`
	Original    string                 `json:"original"`
	Result      string                 `json:"result"`
	Before      readability.Report     `json:"before"`
	After       readability.Report     `json:"after"`
	Comparison  readability.Comparison `json:"comparison"`
	Warnings    []string               `json:"warnings,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// Option customizes a Service.
type Option func(*Service)

// WithSLOTracker records every rewrite in t.
func WithSLOTracker(t *slo.Tracker) Option {
	return func(s *Service) { s.slo = t }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides uuid generation for history entries.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// Service runs rewrites and keeps their history.
type Service struct {
	rewriter rewriter.Rewriter
	history  repository.HistoryRepository
	presets  []Preset
	byName   map[string]Preset
	slo      *slo.Tracker
	now      func() time.Time
	newID    func() string
}

// NewService creates a simplify service. An empty presets slice uses
// DefaultPresets.
func NewService(rw rewriter.Rewriter, history repository.HistoryRepository, presets []Preset, opts ...Option) *Service {
	if len(presets) == 0 {
		presets = DefaultPresets()
	}
	s := &Service{
		rewriter: rw,
		history:  history,
		presets:  presets,
		byName:   make(map[string]Preset, len(presets)),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, p := range presets {
		s.byName[p.Name] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Presets returns the configured presets in display order.
func (s *Service) Presets() []Preset {
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Provider returns the name of the rewriting provider.
func (s *Service) Provider() string {
	return s.rewriter.Name()
}

// resolved is an Input after preset, chain and language rules are applied.
type resolved struct {
	preset      Preset
	label       string
	instruction string
	text        string
	language    string
}

func (s *Service) resolve(ctx context.Context, in Input) (resolved, error) {
	var r resolved

	name := strings.TrimSpace(in.Preset)
	custom := strings.TrimSpace(in.Instruction)
	if name == "" && custom == "" {
		name = PresetSimplify
	}
	if name == "" {
		r.label = PresetCustom
	} else {
		p, ok := s.byName[name]
		if !ok {
			return r, fmt.Errorf("%w %q", ErrUnknownPreset, name)
		}
		r.preset = p
		r.label = p.Name
	}

	r.instruction = r.preset.Instruction
	if custom != "" {
		r.instruction = custom
	}

	r.text = in.Text
	language := strings.TrimSpace(in.Language)

	if r.preset.Chain && in.PreviousID != "" {
		prev, err := s.history.Get(ctx, in.PreviousID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return r, ErrHistoryNotFound
			}
			return r, fmt.Errorf("load previous rewrite: %w", err)
		}
		r.text = prev.Result
		if language == "" {
			language = prev.Language
		}
	}

	if strings.TrimSpace(r.text) == "" {
		return r, ErrEmptyText
	}

	r.language = entity.NormalizeLanguage(language)
	if r.preset.Translate && !entity.IsTranslation(r.language) {
		return r, ErrLanguageRequired
	}
	if !entity.IsSupportedLanguage(r.language, entity.SupportedLanguages) {
		return r, &entity.ValidationError{
			Field:   "language",
			Message: fmt.Sprintf("unsupported language %q", r.language),
		}
	}
	return r, nil
}

// Process rewrites the input, scores both texts and stores the result in
// history.
func (s *Service) Process(ctx context.Context, in Input) (*Output, error) {
	r, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "simplify.Process",
		trace.WithAttributes(
			attribute.String("simplify.preset", r.label),
			attribute.String("simplify.language", r.language),
			attribute.String("simplify.provider", s.rewriter.Name()),
		))
	defer span.End()

	start := time.Now()
	result, err := s.rewriter.Rewrite(ctx, rewriter.Request{
		Text:           r.text,
		Instruction:    r.instruction,
		UseBullets:     in.UseBullets,
		TargetLanguage: r.language,
	})
	duration := time.Since(start)
	if err != nil {
		metrics.RecordSimplification(r.label, duration, 0, false)
		if s.slo != nil {
			s.slo.RecordRewrite(false, false)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "rewrite failed")
		slog.WarnContext(ctx, "rewrite failed",
			slog.String("preset", r.label),
			slog.String("provider", s.rewriter.Name()),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		if errors.Is(err, entity.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRewriteFailed, err)
	}

	t := &entity.Transformation{
		ID:            s.newID(),
		Original:      r.text,
		Result:        result,
		InputMetrics:  readability.Analyze(r.text),
		OutputMetrics: readability.Analyze(result),
		Language:      r.language,
		Preset:        r.label,
		Instruction:   r.instruction,
		Provider:      s.rewriter.Name(),
		CreatedAt:     s.now().UTC(),
	}
	out := toOutput(t)

	gradeDelta := out.Comparison.GradeDelta
	metrics.RecordSimplification(r.label, duration, gradeDelta, true)
	if s.slo != nil {
		s.slo.RecordRewrite(result != rewriter.FallbackResponse, r.preset.metTarget(t.OutputMetrics))
	}
	span.SetAttributes(
		attribute.Float64("simplify.grade_before", t.InputMetrics.FleschKincaidGrade),
		attribute.Float64("simplify.grade_after", t.OutputMetrics.FleschKincaidGrade),
	)

	if err := s.history.Add(ctx, t); err != nil {
		slog.WarnContext(ctx, "failed to store rewrite in history",
			slog.String("id", t.ID),
			slog.Any("error", err))
	}

	slog.InfoContext(ctx, "text rewritten",
		slog.String("id", t.ID),
		slog.String("preset", r.label),
		slog.String("language", r.language),
		slog.Float64("grade_before", t.InputMetrics.FleschKincaidGrade),
		slog.Float64("grade_after", t.OutputMetrics.FleschKincaidGrade),
		slog.Duration("duration", duration))

	return out, nil
}

// metTarget reports whether m reaches the preset's target grade. Presets
// without a target use the default readability targets.
func (p Preset) metTarget(m readability.Metrics) bool {
	if p.TargetGrade <= 0 {
		return m.MeetsTarget()
	}
	return m.HasWords() && m.FleschKincaidGrade <= p.TargetGrade
}

func toOutput(t *entity.Transformation) *Output {
	out := &Output{
		ID:          t.ID,
		Preset:      t.Preset,
		Instruction: t.Instruction,
		Language:    t.Language,
		Provider:    t.Provider,
		Original:    t.Original,
		Result:      t.Result,
		Before:      readability.NewReport(t.InputMetrics),
		After:       readability.NewReport(t.OutputMetrics),
		Comparison:  t.Comparison(),
		CreatedAt:   t.CreatedAt,
	}
	if entity.IsTranslation(t.Language) {
		out.Warnings = append(out.Warnings, WarningTranslated)
	}
	return out
}

// History returns up to limit stored rewrites, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*Output, error) {
	items, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]*Output, 0, len(items))
	for _, t := range items {
		out = append(out, toOutput(t))
	}
	return out, nil
}

// Restore returns a stored rewrite by ID.
func (s *Service) Restore(ctx context.Context, id string) (*Output, error) {
	t, err := s.history.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return toOutput(t), nil
}

// ClearHistory removes every stored rewrite.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	slog.InfoContext(ctx, "history cleared")
	return nil
}
