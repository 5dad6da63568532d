package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthinfo-simplifier/internal/handler/http/pathutil"
	"healthinfo-simplifier/internal/handler/http/responsewriter"
	"healthinfo-simplifier/internal/observability/metrics"
)

// MetricsMiddleware records request count, duration, sizes and in-flight
// requests. Paths are normalized so IDs and unknown paths do not create new
// label values.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)

		metrics.RecordHTTPRequest(r.Method, path, wrapped.StatusCode(), time.Since(start),
			r.ContentLength, wrapped.BytesWritten())
	})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
