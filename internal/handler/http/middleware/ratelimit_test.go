package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(perMinute float64, burst int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: perMinute,
		Burst:             burst,
		IdleTTL:           time.Minute,
		CleanupInterval:   time.Minute,
	}, nil)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(60, 2)

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"), "burst exhausted")
	assert.True(t, rl.Allow("2.2.2.2"), "clients are independent")

	clock.t = clock.t.Add(time.Second)
	assert.True(t, rl.Allow("1.1.1.1"), "one token refills per second")
	assert.False(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(6, 1)
	h := rl.Middleware(okHandler())

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/simplify", nil)
		req.RemoteAddr = "203.0.113.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call().Code)

	rec := call()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded, try again later"}`, rec.Body.String())
}

func TestRateLimiter_CleanupExpired(t *testing.T) {
	rl, clock := newTestLimiter(60, 1)

	rl.Allow("1.1.1.1")
	clock.t = clock.t.Add(30 * time.Second)
	rl.Allow("2.2.2.2")
	require.Equal(t, 2, rl.ActiveClients())

	clock.t = clock.t.Add(45 * time.Second)
	assert.Equal(t, 1, rl.CleanupExpired())
	assert.Equal(t, 1, rl.ActiveClients())
}

func TestRateLimitConfig(t *testing.T) {
	require.NoError(t, DefaultRateLimitConfig().Validate())
	assert.NoError(t, RateLimitConfig{Enabled: false}.Validate())

	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("RATE_LIMIT_BURST", "3")
	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.RequestsPerMinute)
	assert.Equal(t, 3, cfg.Burst)

	t.Setenv("RATE_LIMIT_BURST", "0")
	_, err = LoadRateLimitConfig()
	assert.Error(t, err)
}
