// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fundhive/fundhive/internal/handler/dto"
	"github.com/fundhive/fundhive/internal/middleware"
	"github.com/fundhive/fundhive/internal/service"
)

// Error codes returned in the API error envelope.
const (
	codeInvalidJSON      = "INVALID_JSON"
	codeValidation       = "VALIDATION_ERROR"
	codeUnauthorized     = "UNAUTHORIZED"
	codeForbidden        = "FORBIDDEN"
	codeNotFound         = "NOT_FOUND"
	codeConflict         = "CONFLICT"
	codeAlreadyExists    = "ALREADY_REGISTERED"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	codeInternal         = "INTERNAL_ERROR"
)

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Debug("response_write_failed", slog.String("error", err.Error()))
	}
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Message: message, Code: code})
}

// decodeJSON decodes the request body into dst. It writes the error response
// itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "Request body too large")
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "Request body is required")
	default:
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "Invalid request body")
	}
	return false
}

// handleServiceError maps service errors to HTTP responses. Unknown errors
// are logged with the request ID and answered with a generic 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, codeValidation, validationErr.Error())
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, service.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, codeAlreadyExists, "Already registered for this event")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "Not allowed to modify this resource")
	case errors.Is(err, service.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Project not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "User not found")
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Event not found")
	case errors.Is(err, service.ErrCollaborationNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Collaboration not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, codeConflict, "Email already registered")
	default:
		logger.Error("internal_error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "An internal error occurred")
	}
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed so that the service applies its defaults.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

// pageSize reads the page size from "limit", falling back to "pageSize".
func pageSize(r *http.Request) int {
	if n := queryInt(r, "limit"); n > 0 {
		return n
	}
	return queryInt(r, "pageSize")
}

// clock returns the current time; handlers hold one so tests can pin it.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
