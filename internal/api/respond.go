package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Error codes returned in the error envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBadJSON      = "BAD_JSON"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
