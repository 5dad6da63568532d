package metrics

import (
	"strconv"
	"time"

	"healthinfo-simplifier/internal/readability"
)

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordHTTPRequest records an HTTP request with its metadata.
// path must already be normalized.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, requestSize int64, responseSize int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordAnalysis records one analysis. Metrics of text without words are
// not added to the score histograms.
func RecordAnalysis(input string, m readability.Metrics, duration time.Duration, success bool) {
	AnalysesTotal.WithLabelValues(input, resultLabel(success)).Inc()
	AnalysisDuration.WithLabelValues(input).Observe(duration.Seconds())

	if !success || !m.HasWords() {
		return
	}
	AnalyzedGrade.Observe(m.FleschKincaidGrade)
	AnalyzedEase.Observe(m.FleschReadingEase)
	AnalyzedWords.Observe(float64(m.WordCount))
}

// RecordNonEnglish counts an analysis of text detected as language.
func RecordNonEnglish(language string) {
	NonEnglishTotal.WithLabelValues(language).Inc()
}

// RecordSimplification records a rewrite. gradeDelta is only observed on success.
func RecordSimplification(preset string, duration time.Duration, gradeDelta float64, success bool) {
	SimplificationsTotal.WithLabelValues(preset, resultLabel(success)).Inc()
	SimplificationDuration.WithLabelValues(preset).Observe(duration.Seconds())
	if success {
		SimplificationGradeDelta.WithLabelValues(preset).Observe(gradeDelta)
	}
}

// UpdateHistoryEntries sets the history size gauge.
func UpdateHistoryEntries(n int) {
	HistoryEntries.Set(float64(n))
}

// RecordHistoryPruned counts entries removed by retention.
func RecordHistoryPruned(n int) {
	HistoryPrunedTotal.Add(float64(n))
}

// RecordPageFetch records a page fetch attempt.
func RecordPageFetch(duration time.Duration, success bool) {
	PageFetchesTotal.WithLabelValues(resultLabel(success)).Inc()
	PageFetchDuration.Observe(duration.Seconds())
}
