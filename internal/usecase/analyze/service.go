package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/observability/metrics"
	"healthinfo-simplifier/internal/observability/tracing"
	"healthinfo-simplifier/internal/readability"
	"healthinfo-simplifier/internal/utils/text"
)

// Input sources reported in Result.Source and used as metric labels.
const (
	SourceText = "text"
	SourceHTML = "html"
	SourceURL  = "url"
)

// WarningNonEnglish is attached to results for text detected as another
// language. The scores are still computed.
const WarningNonEnglish = "Currently supports English inputs only. Flesch readability scores are designed for English and are not accurate for other languages."

// PageFetcher retrieves the readable text of a web page.
type PageFetcher interface {
	FetchContent(ctx context.Context, url string) (*entity.Page, error)
}

// LanguageDetector identifies the language of a text.
type LanguageDetector interface {
	Detect(text string) entity.DetectedLanguage
}

// HTMLConverter turns an HTML fragment or document into plain text.
type HTMLConverter func(html string) (string, error)

// Input is one document to analyze. At most one field may be set; an empty
// Input is blank text and yields zero metrics.
type Input struct {
	Text string
	HTML string
	URL  string
}

func (in Input) source() (string, error) {
	set := 0
	src := SourceText
	if in.Text != "" {
		set++
	}
	if strings.TrimSpace(in.HTML) != "" {
		set++
		src = SourceHTML
	}
	if strings.TrimSpace(in.URL) != "" {
		set++
		src = SourceURL
	}
	if set > 1 {
		return "", ErrAmbiguousInput
	}
	return src, nil
}

// Result is the readability report for one document.
type Result struct {
	Source   string                   `json:"source"`
	URL      string                   `json:"url,omitempty"`
	Title    string                   `json:"title,omitempty"`
	Excerpt  string                   `json:"excerpt"`
	Report   readability.Report       `json:"report"`
	Language *entity.DetectedLanguage `json:"language,omitempty"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// Service resolves input to text and scores it.
type Service struct {
	fetcher  PageFetcher
	convert  HTMLConverter
	detector LanguageDetector
	config   Config
}

// NewService creates an analysis service. A nil fetcher disables URL
// input and a nil detector skips language detection. convert must not be nil.
func NewService(fetcher PageFetcher, convert HTMLConverter, detector LanguageDetector, cfg Config) *Service {
	return &Service{
		fetcher:  fetcher,
		convert:  convert,
		detector: detector,
		config:   cfg,
	}
}

// Config returns the limits the service was built with.
func (s *Service) Config() Config {
	return s.config
}

// Analyze scores a single document.
func (s *Service) Analyze(ctx context.Context, in Input) (*Result, error) {
	src, err := in.source()
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "analyze.Analyze",
		trace.WithAttributes(attribute.String("analyze.source", src)))
	defer span.End()

	start := time.Now()
	res, err := s.analyze(ctx, src, in)
	if err != nil {
		metrics.RecordAnalysis(src, readability.Metrics{}, time.Since(start), false)
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		return nil, err
	}

	m := res.Report.Metrics
	metrics.RecordAnalysis(src, m, time.Since(start), true)
	span.SetAttributes(
		attribute.Int("analyze.words", m.WordCount),
		attribute.Int("analyze.sentences", m.SentenceCount),
		attribute.Float64("analyze.grade", m.FleschKincaidGrade),
	)
	return res, nil
}

func (s *Service) analyze(ctx context.Context, src string, in Input) (*Result, error) {
	res := &Result{Source: src}

	var body string
	switch src {
	case SourceURL:
		page, err := s.fetchPage(ctx, strings.TrimSpace(in.URL))
		if err != nil {
			return nil, err
		}
		body = page.Text
		res.URL = page.URL
		res.Title = page.Title
	case SourceHTML:
		converted, err := s.convert(in.HTML)
		if err != nil {
			return nil, fmt.Errorf("convert html: %w", err)
		}
		body = converted
	default:
		body = in.Text
	}

	if s.config.MaxInputChars > 0 && text.CountRunes(body) > s.config.MaxInputChars {
		return nil, &entity.ValidationError{
			Field:   src,
			Message: fmt.Sprintf("text is too long (max %d characters)", s.config.MaxInputChars),
		}
	}

	m := readability.Analyze(body)
	res.Report = readability.NewReport(m)
	res.Excerpt = text.Truncate(strings.TrimSpace(body), s.config.ExcerptChars)

	if s.detector != nil && m.HasWords() {
		lang := s.detector.Detect(body)
		res.Language = &lang
		if !lang.English && lang.Name != entity.UnknownLanguage.Name {
			res.Warnings = append(res.Warnings, WarningNonEnglish)
			metrics.RecordNonEnglish(lang.Name)
			slog.DebugContext(ctx, "non-English text analyzed",
				slog.String("language", lang.Name),
				slog.Float64("confidence", lang.Confidence))
		}
	}

	slog.DebugContext(ctx, "text analyzed",
		slog.String("source", src),
		slog.Int("words", m.WordCount),
		slog.Int("sentences", m.SentenceCount),
		slog.Float64("grade", m.FleschKincaidGrade),
		slog.Float64("ease", m.FleschReadingEase))

	return res, nil
}

func (s *Service) fetchPage(ctx context.Context, rawURL string) (*entity.Page, error) {
	if s.fetcher == nil {
		return nil, ErrURLDisabled
	}
	if err := entity.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	start := time.Now()
	page, err := s.fetcher.FetchContent(ctx, rawURL)
	metrics.RecordPageFetch(time.Since(start), err == nil)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		slog.WarnContext(ctx, "page fetch failed",
			slog.String("url", rawURL),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return page, nil
}
