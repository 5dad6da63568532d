// Package respond writes JSON responses and turns errors into messages that
// are safe to show to API clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v as JSON with the given status code. A nil v writes no body.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes err's message verbatim. Use it only for messages built by
// the handler itself.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// safeFragments mark messages produced by input validation, which can be
// shown to clients as-is.
var safeFragments = []string{
	"please enter",
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"unsupported",
	"not allowed",
}

// SafeError writes err's message when it looks like a validation message
// and code is below 500. Anything else is logged (sanitized) and replaced by
// a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < http.StatusInternalServerError && isSafe(msg) {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: genericMessage(code)})
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, f := range safeFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

func genericMessage(code int) string {
	switch code {
	case http.StatusBadGateway:
		return "rewriting service unavailable"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	case http.StatusGatewayTimeout:
		return "upstream timed out"
	default:
		return "internal server error"
	}
}

// AppError pairs a client-facing message with the internal cause.
type AppError struct {
	UserMsg string
	Err     error
	Code    int
}

// Error returns the internal message when there is one.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the internal cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// Fail writes err. An *AppError anywhere in the chain decides the status and
// message; other errors go through SafeError with fallbackCode.
func Fail(w http.ResponseWriter, fallbackCode int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("application error",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Code, ErrorBody{Error: appErr.UserMsg})
		return
	}

	SafeError(w, fallbackCode, err)
}

// ValidationFailed writes a 400 listing the offending request fields.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "invalid request", Fields: fields})
}
