// Package transport is the JSON HTTP API the Telegram Mini App talks to.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/porbotenet-wq/facadeflow/internal/service"
)

// Error codes of the envelope.
const (
	CodeBadRequest     = "bad_request"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeNotRegistered  = "not_registered"
	CodeUserPending    = "user_pending"
	CodeUserBlocked    = "user_blocked"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeValidation     = "validation_error"
	CodeNotImplemented = "not_implemented"
	CodeInternal       = "internal_error"
)

var statusForCode = map[string]int{
	CodeBadRequest:     http.StatusBadRequest,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeNotRegistered:  http.StatusForbidden,
	CodeUserPending:    http.StatusForbidden,
	CodeUserBlocked:    http.StatusForbidden,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeValidation:     http.StatusUnprocessableEntity,
	CodeNotImplemented: http.StatusNotImplemented,
	CodeInternal:       http.StatusInternalServerError,
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorEnvelope) Error() string { return e.Code + ": " + e.Message }

func apiError(code, format string, args ...any) *ErrorEnvelope {
	return &ErrorEnvelope{Code: code, Message: fmt.Sprintf(format, args...)}
}

// envelopeFor classifies err. Service sentinels keep their message; anything
// unrecognised becomes an internal error with a generic message.
func envelopeFor(err error) *ErrorEnvelope {
	var ee *ErrorEnvelope
	if errors.As(err, &ee) {
		return ee
	}
	switch {
	case errors.Is(err, service.ErrValidation):
		return &ErrorEnvelope{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, service.ErrNotFound):
		return &ErrorEnvelope{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, service.ErrAlreadyMaterialized):
		return &ErrorEnvelope{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, service.ErrUserPending):
		return &ErrorEnvelope{Code: CodeUserPending, Message: "account is waiting for administrator approval"}
	case errors.Is(err, service.ErrUserBlocked):
		return &ErrorEnvelope{Code: CodeUserBlocked, Message: "account is blocked"}
	case errors.Is(err, service.ErrForbidden):
		return &ErrorEnvelope{Code: CodeForbidden, Message: err.Error()}
	default:
		return &ErrorEnvelope{Code: CodeInternal, Message: "internal server error"}
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteError writes err as an envelope. Internal errors are logged with the
// request id since their message is not returned to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ee := envelopeFor(err)
	status := statusForCode[ee.Code]
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError && r != nil {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
	}
	type errorResponse struct {
		Error *ErrorEnvelope `json:"error"`
	}
	WriteJSON(w, status, errorResponse{Error: ee})
}

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apiError(CodeBadRequest, "invalid JSON body: %v", err)
	}
	return nil
}
