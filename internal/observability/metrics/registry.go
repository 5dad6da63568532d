package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration buckets run from 5ms to 60s: analyses answer in
	// milliseconds, rewrites wait on an LLM.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Business metrics track analyses, rewrites and history
var (
	// AnalysesTotal counts analyses by input kind (text, html, url) and result
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readability_analyses_total",
			Help: "Total number of readability analyses",
		},
		[]string{"input", "result"},
	)

	// AnalysisDuration measures time to resolve and analyze one document
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readability_analysis_duration_seconds",
			Help:    "Time taken to analyze a document, including page fetching",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"input"},
	)

	// AnalyzedGrade is the distribution of Flesch-Kincaid grades seen
	AnalyzedGrade = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readability_grade_level",
			Help:    "Flesch-Kincaid grade level of analyzed texts",
			Buckets: []float64{2, 4, 5, 6, 8, 10, 12, 14, 16, 20},
		},
	)

	// AnalyzedEase is the distribution of Flesch reading ease scores seen
	AnalyzedEase = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readability_reading_ease",
			Help:    "Flesch reading ease of analyzed texts",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	// AnalyzedWords is the distribution of word counts
	AnalyzedWords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readability_word_count",
			Help:    "Word count of analyzed texts",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		},
	)

	// NonEnglishTotal counts analyses of text detected as another language
	NonEnglishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readability_non_english_total",
			Help: "Analyses of text detected as a language other than English",
		},
		[]string{"language"},
	)

	// SimplificationsTotal counts rewrites by preset and result
	SimplificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simplifications_total",
			Help: "Total number of rewrite requests",
		},
		[]string{"preset", "result"},
	)

	// SimplificationDuration measures end-to-end rewrite time
	SimplificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simplification_duration_seconds",
			Help:    "Time taken to rewrite and re-analyze a text",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"preset"},
	)

	// SimplificationGradeDelta is the grade change produced by rewrites
	SimplificationGradeDelta = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simplification_grade_delta",
			Help:    "Grade level after rewrite minus grade level before",
			Buckets: prometheus.LinearBuckets(-12, 2, 13),
		},
		[]string{"preset"},
	)

	// HistoryEntries tracks the number of stored transformations
	HistoryEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_entries",
			Help: "Number of transformations currently held in history",
		},
	)

	// HistoryPrunedTotal counts entries removed by the retention sweep
	HistoryPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_pruned_total",
			Help: "Total number of history entries removed by retention",
		},
	)

	// PageFetchesTotal counts web page fetches by result
	PageFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_fetches_total",
			Help: "Total number of web pages fetched for analysis",
		},
		[]string{"result"},
	)

	// PageFetchDuration measures time to fetch and extract a page
	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract a web page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)
