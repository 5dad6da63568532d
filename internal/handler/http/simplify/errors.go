package simplify

import (
	"context"
	"errors"
	"net/http"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/handler/http/respond"
	"healthinfo-simplifier/internal/infra/rewriter"
)

// writeError maps use case errors to statuses. Provider details stay in
// the logs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrNotFound):
		respond.Error(w, http.StatusNotFound, errors.New("history entry not found"))
	case errors.Is(err, rewriter.ErrRateLimited):
		w.Header().Set("Retry-After", "10")
		respond.Fail(w, http.StatusTooManyRequests,
			respond.NewAppError(http.StatusTooManyRequests, "rewriting service is busy, try again later", err))
	case errors.Is(err, rewriter.ErrUnavailable):
		respond.Fail(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "rewriting service temporarily unavailable", err))
	case errors.Is(err, context.DeadlineExceeded):
		respond.SafeError(w, http.StatusGatewayTimeout, err)
	default:
		// ErrRewriteFailed and anything unexpected.
		respond.SafeError(w, http.StatusBadGateway, err)
	}
}
