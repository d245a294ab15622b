package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/GameDB_Go/internal/logger"
)

// Validator wraps a validator instance. Each handler owns one; there is no
// package-level validator to initialize.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator for request structs
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// decodeRequest parses the request body into dst and reports malformed JSON
// to the client. Returns false when the request was already answered.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromContext(r.Context()).Warn("Invalid request body", "operation", op, "error", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
