// Package tracing provides OpenTelemetry tracing for HTTP requests and
// use-case calls.
//
//	shutdown := tracing.Init(1.0)
//	defer shutdown(context.Background())
//
//	handler := tracing.Middleware(mux)
package tracing
