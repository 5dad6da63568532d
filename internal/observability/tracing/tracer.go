package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used across the application.
const InstrumentationName = "healthinfo-simplifier"

// GetTracer returns the application tracer from the global provider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "simplify.Process")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Init installs an SDK tracer provider and the W3C trace context
// propagator as globals. Spans get real trace IDs, which the HTTP layer
// returns in X-Trace-Id and the logger attaches to records. Extra span
// processors (exporters) can be passed in opts.
// The returned function flushes and shuts the provider down.
func Init(sampleRatio float64, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}
	tp := sdktrace.NewTracerProvider(append(base, opts...)...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}

// TraceID returns the trace ID of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
