// Package logging builds log/slog loggers and carries them through contexts.
//
// The HTTP layer stores a request-scoped logger (annotated with the request
// ID) in the request context; use cases and adapters retrieve it with
// FromContext so every line of a request shares the same request_id.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//	ctx = logging.WithLogger(ctx, logging.WithRequestID(ctx, logger))
//	logging.FromContext(ctx).Info("analysis completed", slog.Int("words", n))
package logging
