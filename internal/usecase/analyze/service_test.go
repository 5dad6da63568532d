package analyze_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/infra/fetcher"
	"healthinfo-simplifier/internal/readability"
	"healthinfo-simplifier/internal/usecase/analyze"
)

const (
	easyText = "The doctor saw my mother in the garden paper water."
	hardText = "Hypertension is a serious condition."
)

/* ───────── stubs ───────── */

type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]*entity.Page
	err   error
	calls int
}

func (f *stubFetcher) FetchContent(_ context.Context, url string) (*entity.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return page, nil
}

type stubDetector struct {
	lang entity.DetectedLanguage
}

func (d stubDetector) Detect(string) entity.DetectedLanguage {
	return d.lang
}

var english = entity.DetectedLanguage{Name: "English", ISOCode: "en", Confidence: 0.98, English: true}

func newService(f analyze.PageFetcher, d analyze.LanguageDetector) *analyze.Service {
	return analyze.NewService(f, fetcher.HTMLToText, d, analyze.DefaultConfig())
}

/* ───────── Analyze ───────── */

func TestAnalyze_Text(t *testing.T) {
	svc := newService(nil, stubDetector{lang: english})

	res, err := svc.Analyze(context.Background(), analyze.Input{Text: easyText})
	require.NoError(t, err)

	assert.Equal(t, analyze.SourceText, res.Source)
	assert.Equal(t, readability.Analyze(easyText), res.Report.Metrics)
	assert.Equal(t, readability.GradeLabelStandard, res.Report.GradeLabel)
	assert.True(t, res.Report.MeetsTarget)
	assert.Equal(t, easyText, res.Excerpt)
	require.NotNil(t, res.Language)
	assert.True(t, res.Language.English)
	assert.Empty(t, res.Warnings)
}

func TestAnalyze_BlankTextYieldsZeroMetrics(t *testing.T) {
	det := &countingDetector{}
	svc := analyze.NewService(nil, fetcher.HTMLToText, det, analyze.DefaultConfig())

	for _, in := range []analyze.Input{{}, {Text: "   \n"}} {
		res, err := svc.Analyze(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, res.Report.Metrics.IsZero())
		assert.Equal(t, readability.GradeLabelNone, res.Report.GradeLabel)
		assert.Nil(t, res.Language)
	}
	assert.Zero(t, det.calls.Load(), "detection is skipped for text without words")
}

type countingDetector struct {
	calls atomic.Int32
}

func (d *countingDetector) Detect(string) entity.DetectedLanguage {
	d.calls.Add(1)
	return english
}

func TestAnalyze_NonEnglishWarning(t *testing.T) {
	spanish := entity.DetectedLanguage{Name: "Spanish", ISOCode: "es", Confidence: 0.91}
	svc := newService(nil, stubDetector{lang: spanish})

	res, err := svc.Analyze(context.Background(), analyze.Input{Text: "La presión arterial alta es una condición seria."})
	require.NoError(t, err)

	assert.Equal(t, []string{analyze.WarningNonEnglish}, res.Warnings)
	assert.Equal(t, "Spanish", res.Language.Name)
	assert.True(t, res.Report.Metrics.HasWords(), "non-English text is still scored")
}

func TestAnalyze_UnknownLanguageHasNoWarning(t *testing.T) {
	svc := newService(nil, stubDetector{lang: entity.UnknownLanguage})

	res, err := svc.Analyze(context.Background(), analyze.Input{Text: "Take two."})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, entity.UnknownLanguage.Name, res.Language.Name)
}

func TestAnalyze_HTML(t *testing.T) {
	svc := newService(nil, nil)

	html := `<div><script>alert("x")</script><p>` + hardText + `</p></div>`
	res, err := svc.Analyze(context.Background(), analyze.Input{HTML: html})
	require.NoError(t, err)

	assert.Equal(t, analyze.SourceHTML, res.Source)
	assert.Equal(t, readability.Analyze(hardText), res.Report.Metrics)
	assert.Equal(t, hardText, res.Excerpt)
	assert.Nil(t, res.Language, "no detector configured")
}

func TestAnalyze_URL(t *testing.T) {
	f := &stubFetcher{pages: map[string]*entity.Page{
		"https://health.example.org/bp": {
			URL:   "https://health.example.org/bp",
			Title: "Blood Pressure",
			Text:  hardText,
		},
	}}
	svc := newService(f, stubDetector{lang: english})

	res, err := svc.Analyze(context.Background(), analyze.Input{URL: " https://health.example.org/bp "})
	require.NoError(t, err)

	assert.Equal(t, analyze.SourceURL, res.Source)
	assert.Equal(t, "Blood Pressure", res.Title)
	assert.Equal(t, "https://health.example.org/bp", res.URL)
	assert.Equal(t, 14.7, res.Report.Metrics.FleschKincaidGrade)
	assert.False(t, res.Report.MeetsTarget)
}

func TestAnalyze_URLErrors(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		_, err := newService(nil, nil).Analyze(context.Background(), analyze.Input{URL: "https://example.org"})
		assert.ErrorIs(t, err, analyze.ErrURLDisabled)
	})

	t.Run("invalid url", func(t *testing.T) {
		f := &stubFetcher{}
		_, err := newService(f, nil).Analyze(context.Background(), analyze.Input{URL: "ftp://example.org/file"})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
		assert.Zero(t, f.calls, "invalid URLs are never fetched")
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := &stubFetcher{err: fetcher.ErrNoReadableText}
		_, err := newService(f, nil).Analyze(context.Background(), analyze.Input{URL: "https://example.org"})
		assert.ErrorIs(t, err, analyze.ErrFetchFailed)
		assert.ErrorIs(t, err, fetcher.ErrNoReadableText)
	})

	t.Run("cancellation is not wrapped", func(t *testing.T) {
		f := &stubFetcher{err: context.Canceled}
		_, err := newService(f, nil).Analyze(context.Background(), analyze.Input{URL: "https://example.org"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, analyze.ErrFetchFailed)
	})
}

func TestAnalyze_AmbiguousInput(t *testing.T) {
	svc := newService(&stubFetcher{}, nil)

	tests := []analyze.Input{
		{Text: "a", HTML: "<p>b</p>"},
		{Text: "a", URL: "https://example.org"},
		{HTML: "<p>b</p>", URL: "https://example.org"},
	}
	for _, in := range tests {
		_, err := svc.Analyze(context.Background(), in)
		assert.ErrorIs(t, err, analyze.ErrAmbiguousInput)
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	}
}

func TestAnalyze_TooLong(t *testing.T) {
	cfg := analyze.DefaultConfig()
	cfg.MaxInputChars = 100
	svc := analyze.NewService(nil, fetcher.HTMLToText, nil, cfg)

	_, err := svc.Analyze(context.Background(), analyze.Input{Text: strings.Repeat("word ", 30)})
	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "text", vErr.Field)
}

func TestAnalyze_ExcerptTruncated(t *testing.T) {
	cfg := analyze.DefaultConfig()
	cfg.ExcerptChars = 10
	svc := analyze.NewService(nil, fetcher.HTMLToText, nil, cfg)

	res, err := svc.Analyze(context.Background(), analyze.Input{Text: easyText})
	require.NoError(t, err)
	assert.Equal(t, "The doctor...", res.Excerpt)
}

/* ───────── AnalyzeBatch ───────── */

func TestAnalyzeBatch_PreservesOrder(t *testing.T) {
	svc := newService(nil, nil)

	docs := make([]analyze.Document, 20)
	for i := range docs {
		text := easyText
		if i%2 == 1 {
			text = hardText
		}
		docs[i] = analyze.Document{ID: fmt.Sprintf("doc-%d", i), Input: analyze.Input{Text: text}}
	}

	items, err := svc.AnalyzeBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, items, len(docs))

	for i, item := range items {
		assert.Equal(t, fmt.Sprintf("doc-%d", i), item.ID)
		require.NoError(t, item.Err)
		assert.Equal(t, readability.Analyze(docs[i].Text), item.Result.Report.Metrics)
	}
}

func TestAnalyzeBatch_PerItemErrors(t *testing.T) {
	svc := newService(nil, nil)

	items, err := svc.AnalyzeBatch(context.Background(), []analyze.Document{
		{ID: "ok", Input: analyze.Input{Text: easyText}},
		{ID: "url", Input: analyze.Input{URL: "https://example.org"}},
		{ID: "both", Input: analyze.Input{Text: "a", HTML: "<p>b</p>"}},
	})
	require.NoError(t, err)

	assert.NotNil(t, items[0].Result)
	assert.NoError(t, items[0].Err)
	assert.ErrorIs(t, items[1].Err, analyze.ErrURLDisabled)
	assert.Nil(t, items[1].Result)
	assert.ErrorIs(t, items[2].Err, analyze.ErrAmbiguousInput)
}

func TestAnalyzeBatch_Limits(t *testing.T) {
	cfg := analyze.DefaultConfig()
	cfg.MaxBatchSize = 2
	svc := analyze.NewService(nil, fetcher.HTMLToText, nil, cfg)

	_, err := svc.AnalyzeBatch(context.Background(), nil)
	assert.ErrorIs(t, err, analyze.ErrEmptyBatch)

	_, err = svc.AnalyzeBatch(context.Background(), make([]analyze.Document, 3))
	assert.ErrorIs(t, err, analyze.ErrBatchTooLarge)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

// blockingFetcher tracks the peak number of concurrent fetches.
type blockingFetcher struct {
	active atomic.Int32
	peak   atomic.Int32
}

func (f *blockingFetcher) FetchContent(ctx context.Context, url string) (*entity.Page, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(20 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &entity.Page{URL: url, Text: easyText}, nil
}

func TestAnalyzeBatch_BoundedParallelism(t *testing.T) {
	cfg := analyze.DefaultConfig()
	cfg.BatchParallelism = 3
	f := &blockingFetcher{}
	svc := analyze.NewService(f, fetcher.HTMLToText, nil, cfg)

	docs := make([]analyze.Document, 12)
	for i := range docs {
		docs[i].URL = fmt.Sprintf("https://example.org/%d", i)
	}

	items, err := svc.AnalyzeBatch(context.Background(), docs)
	require.NoError(t, err)
	assert.Len(t, items, 12)
	assert.LessOrEqual(t, f.peak.Load(), int32(3))
}

func TestAnalyzeBatch_Cancelled(t *testing.T) {
	f := &blockingFetcher{}
	svc := newService(f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeBatch(ctx, []analyze.Document{{Input: analyze.Input{URL: "https://example.org"}}})
	assert.ErrorIs(t, err, context.Canceled)
}

/* ───────── Config ───────── */

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, analyze.DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*analyze.Config)
	}{
		{"input too small", func(c *analyze.Config) { c.MaxInputChars = 10 }},
		{"negative excerpt", func(c *analyze.Config) { c.ExcerptChars = -1 }},
		{"zero batch", func(c *analyze.Config) { c.MaxBatchSize = 0 }},
		{"huge batch", func(c *analyze.Config) { c.MaxBatchSize = 5000 }},
		{"zero parallelism", func(c *analyze.Config) { c.BatchParallelism = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := analyze.DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ANALYZE_MAX_BATCH_SIZE", "10")
	t.Setenv("ANALYZE_BATCH_PARALLELISM", "2")

	cfg, err := analyze.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxBatchSize)
	assert.Equal(t, 2, cfg.BatchParallelism)
	assert.Equal(t, 100000, cfg.MaxInputChars)

	t.Setenv("ANALYZE_BATCH_PARALLELISM", "0")
	_, err = analyze.LoadConfigFromEnv()
	assert.Error(t, err)
}
