package rewriter

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by MetricsRecorder.
const (
	OutcomeSuccess     = "success"
	OutcomeFallback    = "fallback"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
	OutcomeRateLimited = "rate_limited"
)

// MetricsRecorder records rewrite metrics. Tests inject a fake in place of
// the Prometheus implementation.
type MetricsRecorder interface {
	// RecordRequest counts a finished rewrite by provider and outcome.
	RecordRequest(provider, outcome string)

	// RecordDuration records the latency of a single provider call.
	RecordDuration(provider string, d time.Duration)

	// RecordLengths records input and output sizes in characters.
	RecordLengths(provider string, inputChars, outputChars int)
}

// PrometheusMetrics implements MetricsRecorder with Prometheus collectors.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	length   *prometheus.HistogramVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return c
}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
	return h
}

// NewPrometheusMetrics returns the process-wide recorder, registering its
// collectors with the default registry on first use.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			requests: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "rewriter_requests_total",
				Help: "Total number of rewrite requests by provider and outcome",
			}, []string{"provider", "outcome"}),
			duration: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "rewriter_call_duration_seconds",
				Help:    "Latency of a single rewrite call to the LLM provider",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"}),
			length: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "rewriter_text_length_characters",
				Help:    "Length of rewrite input and output in characters",
				Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
			}, []string{"provider", "direction"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordRequest implements MetricsRecorder.
func (p *PrometheusMetrics) RecordRequest(provider, outcome string) {
	p.requests.WithLabelValues(provider, outcome).Inc()
}

// RecordDuration implements MetricsRecorder.
func (p *PrometheusMetrics) RecordDuration(provider string, d time.Duration) {
	p.duration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordLengths implements MetricsRecorder.
func (p *PrometheusMetrics) RecordLengths(provider string, inputChars, outputChars int) {
	p.length.WithLabelValues(provider, "input").Observe(float64(inputChars))
	p.length.WithLabelValues(provider, "output").Observe(float64(outputChars))
}
