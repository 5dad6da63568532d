// Package retry repeats calls to rewriting providers and web pages while
// they fail transiently, waiting a capped exponential backoff between tries.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// Attempts is the total number of calls, the first one included.
	// Values below 1 behave as 1.
	Attempts int

	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps every wait, including server-requested ones.
	MaxDelay time.Duration

	// Factor multiplies the wait after each failure. Values below 1 behave as 1.
	Factor float64

	// Jitter adds up to this fraction of the wait at random, in [0, 1].
	Jitter float64
}

// ForRewriter is the policy for LLM rewrite calls. Every attempt is billed,
// so there are few of them.
func ForRewriter() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 2 * time.Second,
		MaxDelay:  10 * time.Second,
		Factor:    2,
		Jitter:    0.1,
	}
}

// ForPageFetch is the policy for fetching pages submitted for analysis.
func ForPageFetch() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Factor:    2,
		Jitter:    0.1,
	}
}

// Backoff returns the wait before retry n (1-based), without jitter.
func (p Policy) Backoff(n int) time.Duration {
	if n < 1 || p.BaseDelay <= 0 {
		return 0
	}
	factor := math.Max(p.Factor, 1)
	d := float64(p.BaseDelay) * math.Pow(factor, float64(n-1))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// wait picks the delay before retry n after err: the backoff or the
// server's Retry-After, whichever is longer, then jitter and the cap.
func (p Policy) wait(n int, err error) time.Duration {
	d := p.Backoff(n)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > d {
		d = httpErr.RetryAfter
	}
	if j := math.Min(p.Jitter, 1); j > 0 && d > 0 {
		// #nosec G404 -- jitter needs no cryptographic randomness
		d += time.Duration(rand.Float64() * j * float64(d))
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Do calls fn until it succeeds, fails permanently or runs out of attempts.
// op names the operation in logs and errors. Cancelling ctx stops the
// waiting between attempts.
func Do(ctx context.Context, p Policy, op string, fn func(ctx context.Context) error) error {
	attempts := max(p.Attempts, 1)

	var err error
	for n := 1; ; n++ {
		if err = fn(ctx); err == nil {
			if n > 1 {
				slog.InfoContext(ctx, "retry succeeded",
					slog.String("operation", op),
					slog.Int("attempt", n))
			}
			return nil
		}

		if !IsRetryable(err) {
			return unwrapPermanent(err)
		}
		if n == attempts {
			return fmt.Errorf("%s: %w after %d attempts: %w", op, ErrExhausted, attempts, err)
		}

		delay := p.wait(n, err)
		slog.WarnContext(ctx, "transient failure, retrying",
			slog.String("operation", op),
			slog.Int("attempt", n),
			slog.Int("attempts", attempts),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: retry aborted: %w", op, ctx.Err())
		}
	}
}

// permanentError stops Do from retrying an otherwise retryable error.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns err itself.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func unwrapPermanent(err error) error {
	if p, ok := err.(*permanentError); ok {
		return p.err
	}
	return err
}

// IsRetryable reports whether err is transient: network timeouts, refused
// or reset connections, and 5xx, 429 or 408 responses. Cancellation and
// errors marked Permanent are never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var p *permanentError
	if errors.As(err, &p) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests,
			httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}

	return false
}

// HTTPError is a non-2xx answer from a provider or page.
type HTTPError struct {
	StatusCode int
	Message    string

	// RetryAfter is the wait the server asked for, zero when it did not.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. Missing, malformed and past values yield zero.
func ParseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
