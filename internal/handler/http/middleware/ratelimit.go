package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"healthinfo-simplifier/internal/handler/http/respond"
	"healthinfo-simplifier/pkg/config"
)

// RateLimitConfig controls per-client limits on expensive endpoints.
type RateLimitConfig struct {
	Enabled bool

	// RequestsPerMinute is the sustained rate per client. Default: 10.
	RequestsPerMinute float64

	// Burst is the number of requests a client may make at once. Default: 5.
	Burst int

	// IdleTTL is how long an idle client is remembered. Default: 10m.
	IdleTTL time.Duration

	// CleanupInterval is how often idle clients are dropped. Default: 5m.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the default per-client limits.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 10,
		Burst:             5,
		IdleTTL:           10 * time.Minute,
		CleanupInterval:   5 * time.Minute,
	}
}

// LoadRateLimitConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_PER_MINUTE,
// RATE_LIMIT_BURST, RATE_LIMIT_IDLE_TTL and RATE_LIMIT_CLEANUP_INTERVAL.
func LoadRateLimitConfig() (RateLimitConfig, error) {
	def := DefaultRateLimitConfig()
	cfg := RateLimitConfig{
		Enabled:           config.GetEnvBool("RATE_LIMIT_ENABLED", def.Enabled),
		RequestsPerMinute: config.GetEnvFloat("RATE_LIMIT_PER_MINUTE", def.RequestsPerMinute),
		Burst:             config.GetEnvInt("RATE_LIMIT_BURST", def.Burst),
		IdleTTL:           config.GetEnvDuration("RATE_LIMIT_IDLE_TTL", def.IdleTTL),
		CleanupInterval:   config.GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", def.CleanupInterval),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("rate limit config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return errors.Join(
		config.Positive("RATE_LIMIT_PER_MINUTE", c.RequestsPerMinute),
		config.AtLeast("RATE_LIMIT_BURST", c.Burst, 1),
		config.Positive("RATE_LIMIT_IDLE_TTL", c.IdleTTL),
		config.Positive("RATE_LIMIT_CLEANUP_INTERVAL", c.CleanupInterval),
	)
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per client IP. Safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	extractor IPExtractor
	now       func() time.Time
}

// NewRateLimiter creates a limiter from cfg. Enabled is not consulted here;
// callers skip the middleware when limiting is disabled.
func NewRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *RateLimiter {
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &RateLimiter{
		clients:   make(map[string]*client),
		limit:     rate.Limit(cfg.RequestsPerMinute / 60),
		burst:     cfg.Burst,
		idleTTL:   cfg.IdleTTL,
		extractor: extractor,
		now:       time.Now,
	}
}

// Allow consumes a token for ip and reports whether the request may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// retryAfter is the time until one token is available, in whole seconds.
func (rl *RateLimiter) retryAfter() int {
	if rl.limit <= 0 {
		return 60
	}
	return int(math.Ceil(1 / float64(rl.limit)))
}

// Middleware rejects requests over the client's limit with 429 and a
// Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			slog.WarnContext(r.Context(), "rate limiter: cannot determine client IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = r.RemoteAddr
		}

		if !rl.Allow(ip) {
			slog.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
			respond.Error(w, http.StatusTooManyRequests, errors.New("rate limit exceeded, try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CleanupExpired forgets clients idle for longer than the TTL and returns
// how many were removed.
func (rl *RateLimiter) CleanupExpired() int {
	cutoff := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// ActiveClients returns the number of tracked clients.
func (rl *RateLimiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
