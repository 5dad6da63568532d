// Package circuitbreaker stops calling a rewriting provider or the page
// fetcher while it keeps failing, using github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrOpen is returned without calling the guarded function while the
// breaker is open or its half-open trial slots are taken.
var ErrOpen = errors.New("circuit breaker open")

// Config describes when a breaker trips and how it recovers.
type Config struct {
	// Name identifies the breaker in logs, errors and health output.
	Name string

	// HalfOpenRequests is the number of trial calls let through after
	// OpenTimeout. All must succeed for the breaker to close.
	HalfOpenRequests uint32

	// Interval resets the closed-state counts. Zero never resets them.
	Interval time.Duration

	// OpenTimeout is how long the breaker rejects calls once tripped.
	OpenTimeout time.Duration

	// FailureRatio trips the breaker once at least MinRequests were counted.
	FailureRatio float64
	MinRequests  uint32

	// Ignore reports errors that say nothing about the remote side's health.
	// They are returned to the caller but not counted as failures.
	// Cancellation by the caller is always ignored.
	Ignore func(err error) bool
}

// ForRewriter returns the breaker settings for a rewriting provider.
func ForRewriter(provider string) Config {
	return Config{
		Name:             provider + "-rewriter",
		HalfOpenRequests: 3,
		Interval:         30 * time.Second,
		OpenTimeout:      60 * time.Second,
		FailureRatio:     0.6,
		MinRequests:      5,
	}
}

// ForPageFetch returns the breaker settings for page fetching. Pages fail
// for site-specific reasons, so it trips later and recovers sooner.
func ForPageFetch() Config {
	return Config{
		Name:             "page-fetch",
		HalfOpenRequests: 5,
		Interval:         60 * time.Second,
		OpenTimeout:      30 * time.Second,
		FailureRatio:     0.8,
		MinRequests:      10,
	}
}

// Breaker guards calls to one remote dependency.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a closed breaker.
func New(cfg Config) *Breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return cfg.Ignore != nil && cfg.Ignore(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			level := slog.LevelInfo
			if to == gobreaker.StateOpen {
				level = slog.LevelWarn
			}
			slog.Log(context.Background(), level, "circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Name returns the configured name.
func (b *Breaker) Name() string { return b.cb.Name() }

// State returns "closed", "half-open" or "open".
func (b *Breaker) State() string { return b.cb.State().String() }

// Open reports whether calls are currently rejected outright.
func (b *Breaker) Open() bool { return b.cb.State() == gobreaker.StateOpen }

// Call runs fn through b. A rejected call returns an error wrapping ErrOpen
// and fn is not run.
func Call[T any](b *Breaker, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w", b.Name(), ErrOpen)
		}
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}
