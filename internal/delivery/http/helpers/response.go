package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventagenda/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeGroupMismatch    = "group_mismatch"
	ErrCodeCapacityExceeded = "capacity_exceeded"
	ErrCodeVersionConflict  = "version_conflict"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeInternalError    = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// StatusForError maps a service error to its HTTP status and error code.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrGroupMismatch):
		return http.StatusConflict, ErrCodeGroupMismatch
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, ErrCodeCapacityExceeded
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, ErrCodeVersionConflict
	case errors.Is(err, domain.ErrTransient):
		return http.StatusServiceUnavailable, ErrCodeUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteServiceError writes the envelope for err. Server-side failures are
// logged and their message is not echoed to the client.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusForError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
		message = http.StatusText(status)
	}
	WriteJSONError(w, status, code, message)
}
