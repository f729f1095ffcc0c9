package utils

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// MaxRequestBodyBytes bounds JSON request bodies accepted by handlers
const MaxRequestBodyBytes = 1 << 20

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
}

// WriteJSON encodes data as the response body
func WriteJSON(w http.ResponseWriter, status int, data interface{}, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// StatusFor maps a service error onto an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailInUse), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the error body for err.
// Internal failures are logged and reported with a generic message.
func WriteError(w http.ResponseWriter, err error, log zerolog.Logger) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
		message = "An unexpected error occurred"
	}

	WriteJSON(w, status, ErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   message,
		Status:    status,
	}, log)
}

// DecodeJSON reads a bounded JSON body into dst.
// Decoding failures are reported as domain.ErrInvalidInput.
func DecodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err != nil {
		return &InputError{Message: "failed to read request body"}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &InputError{Message: "invalid request body"}
	}
	return nil
}

// PathID parses a positive integer URL parameter
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &InputError{Message: "invalid " + name}
	}
	return id, nil
}

// InputError is a client mistake outside struct validation.
// It matches domain.ErrInvalidInput with errors.Is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// Is makes errors.Is(err, domain.ErrInvalidInput) true
func (e *InputError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}
