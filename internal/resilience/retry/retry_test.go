package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: time.Millisecond,
		MaxDelay:  10 * time.Millisecond,
		Factor:    2,
	}
}

func TestDo_Success(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(), "test", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(), "test", func(context.Context) error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503, Message: "overloaded"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_Exhausted(t *testing.T) {
	calls := 0
	last := &HTTPError{StatusCode: 500, Message: "boom"}
	err := Do(context.Background(), fastPolicy(), "rewrite", func(context.Context) error {
		calls++
		return last
	})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, last)
	assert.Equal(t, "rewrite: retry attempts exhausted after 3 attempts: HTTP 500: boom", err.Error())
}

func TestDo_NonRetryableReturnedAsIs(t *testing.T) {
	calls := 0
	bad := &HTTPError{StatusCode: 401, Message: "bad key"}
	err := Do(context.Background(), fastPolicy(), "test", func(context.Context) error {
		calls++
		return bad
	})

	assert.Equal(t, 1, calls)
	assert.Same(t, bad, err)
}

func TestDo_Permanent(t *testing.T) {
	calls := 0
	unavailable := &HTTPError{StatusCode: 503, Message: "circuit open"}
	err := Do(context.Background(), fastPolicy(), "test", func(context.Context) error {
		calls++
		return Permanent(unavailable)
	})

	assert.Equal(t, 1, calls)
	assert.Same(t, unavailable, err)
	assert.Nil(t, Permanent(nil))
}

func TestDo_ZeroAttemptsCallsOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{}, "test", func(context.Context) error {
		calls++
		return syscall.ECONNRESET
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, syscall.ECONNRESET)
}

func TestDo_ContextCanceledWhileWaiting(t *testing.T) {
	p := fastPolicy()
	p.Attempts = 5
	p.BaseDelay = time.Hour
	p.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, p, "test", func(context.Context) error {
		calls++
		cancel()
		return &HTTPError{StatusCode: 500}
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "retry aborted")
}

func TestPolicy_Backoff(t *testing.T) {
	p := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, Factor: 3}

	tests := []struct {
		n    int
		want time.Duration
	}{
		{0, 0},
		{1, 100 * time.Millisecond},
		{2, 300 * time.Millisecond},
		{3, 900 * time.Millisecond},
		{4, time.Second},
		{50, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Backoff(tt.n), "retry %d", tt.n)
	}

	flat := Policy{BaseDelay: 50 * time.Millisecond, Factor: 0.5}
	assert.Equal(t, 50*time.Millisecond, flat.Backoff(4), "factors below 1 do not shrink the wait")
}

func TestPolicy_Wait(t *testing.T) {
	p := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: 2 * time.Second, Factor: 2}

	assert.Equal(t, 100*time.Millisecond, p.wait(1, errors.New("x")))

	t.Run("honors Retry-After", func(t *testing.T) {
		err := fmt.Errorf("claude: %w", &HTTPError{StatusCode: 429, RetryAfter: time.Second})
		assert.Equal(t, time.Second, p.wait(1, err))
	})

	t.Run("caps Retry-After", func(t *testing.T) {
		err := &HTTPError{StatusCode: 429, RetryAfter: time.Minute}
		assert.Equal(t, 2*time.Second, p.wait(1, err))
	})

	t.Run("jitter stays within the fraction", func(t *testing.T) {
		p := p
		p.Jitter = 0.2
		seen := map[time.Duration]bool{}
		for i := 0; i < 20; i++ {
			d := p.wait(1, errors.New("x"))
			assert.GreaterOrEqual(t, d, 100*time.Millisecond)
			assert.LessOrEqual(t, d, 120*time.Millisecond)
			seen[d] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"500", &HTTPError{StatusCode: 500}, true},
		{"503 wrapped", fmt.Errorf("gemini: %w", &HTTPError{StatusCode: 503}), true},
		{"429", &HTTPError{StatusCode: 429}, true},
		{"408", &HTTPError{StatusCode: 408}, true},
		{"400", &HTTPError{StatusCode: 400}, false},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"permanent 503", Permanent(&HTTPError{StatusCode: 503}), false},
		{"wrapped permanent", fmt.Errorf("fetch: %w", Permanent(syscall.ECONNRESET)), false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"timed out", syscall.ETIMEDOUT, true},
		{"network unreachable", syscall.ENETUNREACH, true},
		{"other", errors.New("parse failure"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestPolicies(t *testing.T) {
	rw := ForRewriter()
	assert.Equal(t, 3, rw.Attempts)
	assert.Equal(t, 2*time.Second, rw.Backoff(1))
	assert.Equal(t, 10*time.Second, rw.Backoff(5))

	page := ForPageFetch()
	assert.Equal(t, 500*time.Millisecond, page.Backoff(1))
	assert.LessOrEqual(t, page.MaxDelay, 5*time.Second)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"7", 7 * time.Second},
		{" 30 ", 30 * time.Second},
		{"0", 0},
		{"-5", 0},
		{"soon", 0},
		{now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRetryAfter(tt.header, now), "header %q", tt.header)
	}
}
