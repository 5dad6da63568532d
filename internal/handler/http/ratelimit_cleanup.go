package http

import (
	"context"
	"log/slog"
	"time"
)

// ExpiringStore drops idle entries on demand and reports how many it removed.
type ExpiringStore interface {
	CleanupExpired() int
}

// StartRateLimitCleanup calls store.CleanupExpired every interval until ctx
// is cancelled. It blocks; run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, store ExpiringStore, interval time.Duration, name string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter", name),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped", slog.String("limiter", name))
			return
		case <-ticker.C:
			if removed := store.CleanupExpired(); removed > 0 {
				slog.Debug("rate limit entries expired",
					slog.String("limiter", name),
					slog.Int("removed", removed))
			}
		}
	}
}
