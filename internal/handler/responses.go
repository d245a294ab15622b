package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/GameDB_Go/internal/domain"
)

// ErrorResponse represents a transport-level error (malformed body, wrong route)
type ErrorResponse struct {
	Error string `json:"error"`
}

// Envelope is the wire shape shared by every operation response. ResponseData
// carries the per-operation payload and is omitted when the operation failed.
type Envelope struct {
	Results      []domain.Result `json:"results"`
	ResponseData interface{}     `json:"response_data,omitempty"`
}

// PageData is returned by the list operations alongside the matched records.
type PageData struct {
	Page       int64 `json:"page"`
	PerPage    int64 `json:"per_page"`
	TotalCount int64 `json:"total_count"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a marshal failure never produces a
	// half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondEnvelope writes an operation envelope. Business failures still travel
// with HTTP 200; the results list is the status channel clients act on.
func respondEnvelope(w http.ResponseWriter, results []domain.Result, data interface{}) {
	env := Envelope{Results: results}
	if domain.OK(results) {
		env.ResponseData = data
	}
	respondJSON(w, http.StatusOK, env)
}

// respondMissingVariant rejects a request whose data union does not carry the
// variant the route expects. Storage is never touched in this path.
func respondMissingVariant(w http.ResponseWriter, op string) {
	results := []domain.Result{
		domain.Failure(domain.ErrCodeDBInvalidData, fmt.Sprintf("Request data must contain %s", op)),
	}
	respondJSON(w, http.StatusBadRequest, Envelope{Results: results})
}

// respondValidation rejects a request whose variant failed struct validation.
func respondValidation(w http.ResponseWriter, err error) {
	results := []domain.Result{
		domain.Failure(domain.ErrCodeDBInvalidData, err.Error()),
	}
	respondJSON(w, http.StatusBadRequest, Envelope{Results: results})
}
