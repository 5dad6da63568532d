// Package metrics provides centralized Prometheus metrics for the application.
//
// It covers HTTP traffic (count, latency, sizes, in-flight requests) and
// business activity: readability analyses and their score distributions,
// rewrites and the grade change they produce, history size and page fetches.
// All collectors are registered with the default registry and exposed on
// /metrics.
//
//	start := time.Now()
//	m := readability.Analyze(text)
//	metrics.RecordAnalysis("text", m, time.Since(start), true)
package metrics
