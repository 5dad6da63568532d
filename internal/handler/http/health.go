// Package http wires the HTTP surface: health probes, request metrics and
// the middleware shared by the analyze and simplify endpoints. The endpoints
// themselves live in the analyze and simplify subpackages.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"healthinfo-simplifier/internal/infra/rewriter"
	"healthinfo-simplifier/internal/observability/slo"
)

// Health states reported by the probes.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HistoryCounter reports the number of stored rewrites.
type HistoryCounter interface {
	Len(ctx context.Context) (int, error)
}

// ClientCounter reports the number of clients a rate limiter tracks.
type ClientCounter interface {
	ActiveClients() int
}

// HealthHandler reports the state of the rewriter, the history store, the
// SLO window and the rate limiter. An open circuit breaker degrades the
// service, since analysis still works; a failing history store makes it
// unhealthy.
type HealthHandler struct {
	Version     string
	Rewriter    rewriter.Rewriter
	History     HistoryCounter
	SLO         *slo.Tracker
	RateLimiter ClientCounter
}

// ServeHTTP returns 200 while healthy or degraded and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	if h.Rewriter != nil {
		checks["rewriter"] = h.checkRewriter()
	}
	if h.History != nil {
		checks["history"] = h.checkHistory(ctx)
	}
	if h.SLO != nil {
		success, attainment := h.SLO.Ratios()
		checks["slo"] = CheckStatus{
			Status: StatusHealthy,
			Details: map[string]any{
				"success_ratio":    success,
				"attainment_ratio": attainment,
			},
		}
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_clients": h.RateLimiter.ActiveClients()},
		}
	}

	status := overallStatus(checks)
	code := http.StatusOK
	if status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkRewriter() CheckStatus {
	details := map[string]any{"provider": h.Rewriter.Name()}
	cr, ok := h.Rewriter.(rewriter.CircuitReporter)
	if !ok {
		return CheckStatus{Status: StatusHealthy, Details: details}
	}

	state := cr.CircuitState()
	details["circuit_breaker"] = state
	if state == "open" {
		return CheckStatus{
			Status:  StatusDegraded,
			Message: "circuit breaker open; rewrites are rejected",
			Details: details,
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

func (h *HealthHandler) checkHistory(ctx context.Context) CheckStatus {
	n, err := h.History.Len(ctx)
	if err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: err.Error()}
	}
	return CheckStatus{Status: StatusHealthy, Details: map[string]any{"entries": n}}
}

func overallStatus(checks map[string]CheckStatus) string {
	status := StatusHealthy
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

// ReadyHandler answers readiness probes. It reports not ready until
// SetReady(true) is called and again once shutdown begins.
type ReadyHandler struct {
	ready atomic.Bool
}

// SetReady flips the readiness state.
func (h *ReadyHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// ServeHTTP returns 200 "ready" or 503 "not ready".
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if !h.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 "alive".
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
