package httpapi

import (
	"encoding/json"
	"net/http"

	"playd/internal/engine"
	"playd/internal/runtime"
	"playd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusForError maps well-known engine/runtime errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case engine.IsTooBusy(err):
		return http.StatusTooManyRequests
	case engine.IsIndexEmpty(err):
		return http.StatusConflict
	case engine.IsSessionNotFound(err), runtime.IsNotFound(err):
		return http.StatusNotFound
	case runtime.IsUnavailable(err):
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
