// Package fetcher turns web pages and pasted HTML into plain text for
// readability analysis. Pages are pulled with SSRF checks, size limits and
// a circuit breaker, and the main article is extracted with
// go-shiori/go-readability.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/resilience/circuitbreaker"
	"healthinfo-simplifier/internal/resilience/retry"
)

// ReadabilityFetcher fetches web pages and extracts their article text.
// It is safe for concurrent use.
type ReadabilityFetcher struct {
	client      *http.Client
	breaker     *circuitbreaker.Breaker
	retryPolicy retry.Policy
	config      Config
}

// Option customizes a ReadabilityFetcher.
type Option func(*ReadabilityFetcher)

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(f *ReadabilityFetcher) { f.retryPolicy = p }
}

// WithCircuitBreaker overrides the breaker settings. Client errors of
// individual pages are never counted against it.
func WithCircuitBreaker(cfg circuitbreaker.Config) Option {
	return func(f *ReadabilityFetcher) { f.breaker = newBreaker(cfg) }
}

func newBreaker(cfg circuitbreaker.Config) *circuitbreaker.Breaker {
	cfg.Ignore = isPageError
	return circuitbreaker.New(cfg)
}

// isPageError reports failures caused by the requested page rather than by
// the fetcher's connectivity: bad URLs, blocked hosts, oversized or
// unreadable pages and 4xx answers other than 408 and 429.
func isPageError(err error) bool {
	if errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrPrivateIP) ||
		errors.Is(err, ErrTooManyRedirects) || errors.Is(err, ErrBodyTooLarge) ||
		errors.Is(err, ErrNoReadableText) {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 &&
			httpErr.StatusCode != http.StatusRequestTimeout &&
			httpErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// NewReadabilityFetcher creates a fetcher. Redirect targets are validated
// with the same SSRF rules as the original URL.
//
//	f := fetcher.NewReadabilityFetcher(fetcher.DefaultConfig())
//	page, err := f.FetchContent(ctx, "https://example.com/hypertension")
func NewReadabilityFetcher(config Config, opts ...Option) *ReadabilityFetcher {
	f := &ReadabilityFetcher{
		breaker:     newBreaker(circuitbreaker.ForPageFetch()),
		retryPolicy: retry.ForPageFetch(),
		config:      config,
	}

	f.client = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchContent fetches urlStr and returns its readable text.
// Transient failures (5xx, 429, network timeouts) are retried; SSRF and
// size violations are not.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (*entity.Page, error) {
	if err := validateURL(ctx, urlStr, f.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	var page *entity.Page
	err := retry.Do(ctx, f.retryPolicy, "page fetch", func(ctx context.Context) error {
		p, err := circuitbreaker.Call(f.breaker, func() (*entity.Page, error) {
			return f.doFetch(ctx, urlStr)
		})
		if errors.Is(err, circuitbreaker.ErrOpen) {
			slog.WarnContext(ctx, "page fetch circuit breaker open, request rejected",
				slog.String("circuit", f.breaker.Name()),
				slog.String("url", urlStr))
			return retry.Permanent(&retry.HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "page fetching temporarily disabled"})
		}
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// doFetch performs one request and extraction without retry or breaker.
func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (*entity.Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) ||
			errors.Is(urlErr.Err, ErrPrivateIP) || errors.Is(urlErr.Err, ErrInvalidURL)) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds limit %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	// The final URL may differ after redirects.
	pageURL := resp.Request.URL

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoReadableText, err)
	}

	text := normalizeText(article.TextContent)
	if text == "" && article.Content != "" {
		slog.DebugContext(ctx, "readability text empty, converting article HTML",
			slog.String("url", urlStr),
			slog.Int("content_length", len(article.Content)))
		text, err = HTMLToText(article.Content)
		if err != nil {
			return nil, err
		}
	}
	if text == "" {
		return nil, ErrNoReadableText
	}

	slog.InfoContext(ctx, "page fetched",
		slog.String("url", pageURL.String()),
		slog.Int("html_bytes", len(htmlBytes)),
		slog.Int("text_length", len(text)),
		slog.Duration("duration", time.Since(start)))

	return &entity.Page{
		URL:      pageURL.String(),
		Title:    strings.TrimSpace(article.Title),
		SiteName: article.SiteName,
		Text:     text,
	}, nil
}
