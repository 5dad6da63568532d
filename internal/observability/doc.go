// Package observability groups the logging, metrics, tracing and SLO
// packages used by the API server and the CLI.
//
// Subpackages:
//   - logging: slog setup with request ID enrichment
//   - metrics: Prometheus HTTP and business metrics
//   - tracing: OpenTelemetry provider setup and HTTP middleware
//   - slo: rolling rewrite success and readability target ratios
package observability
