package analyze

import (
	"context"
	"errors"
	"net/http"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/handler/http/respond"
	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
)

// statusFor maps a use case error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, analyzeUC.ErrURLDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, analyzeUC.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the client-facing text for err. Messages of errors the
// client caused are shown as-is.
func publicMessage(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotImplemented:
		return analyzeUC.ErrURLDisabled.Error()
	case http.StatusBadGateway:
		return analyzeUC.ErrFetchFailed.Error()
	case http.StatusGatewayTimeout:
		return "upstream timed out"
	default:
		return "internal server error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusBadRequest {
		respond.Error(w, code, err)
		return
	}
	respond.Fail(w, code, respond.NewAppError(code, publicMessage(err), err))
}
