// Package slo tracks service level indicators for rewriting: how often a
// rewrite succeeds and how often its result meets the readability target.
package slo

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets.
const (
	// RewriteSuccessSLO is the target share of rewrites that return text.
	RewriteSuccessSLO = 0.99

	// TargetAttainmentSLO is the target share of successful rewrites whose
	// result reads at grade 6 or lower with reading ease 60 or higher.
	TargetAttainmentSLO = 0.80

	// DefaultWindow is the number of recent rewrites the ratios cover.
	DefaultWindow = 200
)

var (
	// SLORewriteSuccess is the rolling rewrite success ratio.
	SLORewriteSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_rewrite_success_ratio",
			Help: "Share of recent rewrites that succeeded (0-1), target: 0.99",
		},
	)

	// SLOTargetAttainment is the rolling readability target attainment ratio.
	SLOTargetAttainment = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_readability_target_ratio",
			Help: "Share of recent successful rewrites meeting the readability target (0-1), target: 0.80",
		},
	)
)

// window is a fixed-size ring of boolean outcomes.
type window struct {
	outcomes []bool
	next     int
	filled   bool
	hits     int
}

func newWindow(size int) *window {
	return &window{outcomes: make([]bool, size)}
}

func (w *window) add(ok bool) {
	if w.filled && w.outcomes[w.next] {
		w.hits--
	}
	w.outcomes[w.next] = ok
	if ok {
		w.hits++
	}
	w.next++
	if w.next == len(w.outcomes) {
		w.next = 0
		w.filled = true
	}
}

func (w *window) ratio() float64 {
	n := w.next
	if w.filled {
		n = len(w.outcomes)
	}
	if n == 0 {
		return 1
	}
	return float64(w.hits) / float64(n)
}

// Tracker keeps rolling ratios over the last N rewrites and publishes them
// to the SLO gauges. It is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	success    *window
	attainment *window
}

// NewTracker creates a tracker covering the last size rewrites.
// A non-positive size uses DefaultWindow.
func NewTracker(size int) *Tracker {
	if size <= 0 {
		size = DefaultWindow
	}
	return &Tracker{
		success:    newWindow(size),
		attainment: newWindow(size),
	}
}

// RecordRewrite adds one rewrite outcome. metTarget is ignored for failed
// rewrites.
func (t *Tracker) RecordRewrite(succeeded, metTarget bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.success.add(succeeded)
	SLORewriteSuccess.Set(t.success.ratio())

	if succeeded {
		t.attainment.add(metTarget)
		SLOTargetAttainment.Set(t.attainment.ratio())
	}
}

// Ratios returns the current success and attainment ratios.
func (t *Tracker) Ratios() (success, attainment float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.success.ratio(), t.attainment.ratio()
}
