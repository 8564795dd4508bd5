package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Storage errors are logged, never returned.
const ErrMessageInternal = "internal server error"

// ErrorResponse is the JSON error body. Fields maps query parameter names to what failed.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeError(w, ErrorResponse{Error: message}, status)
}

// JSONValidationError sends a JSON error response with "error" and "fields" for parameter-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	writeError(w, ErrorResponse{Error: message, Fields: fields}, status)
}

func writeError(w http.ResponseWriter, body ErrorResponse, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
