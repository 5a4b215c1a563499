// Package response renders the JSON envelopes of the HTTP API.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Envelope wraps every successful non-streamed response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope wraps every failed response.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// JSON writes data inside an Envelope with the given status.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	write(w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes err as an ErrorEnvelope and returns the status it used.
// Errors that are not *apperror.APIError are reported as 500 without
// exposing their text, except model.ErrNotFound which becomes 404.
func Error(w http.ResponseWriter, err error) int {
	var apiErr *apperror.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, model.ErrNotFound):
		apiErr = apperror.NotFound("Resource not found")
	default:
		apiErr = apperror.Internal("Internal server error")
	}

	errs := apiErr.Errors
	if errs == nil {
		errs = []string{}
	}

	write(w, apiErr.StatusCode, ErrorEnvelope{
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     errs,
	})
	return apiErr.StatusCode
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
