package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	var (
		validationErr domain.ValidationError
		existsErr     *domain.ErrCompanyExists
		csvErr        *domain.ErrCSVParse
		notFoundErr   *domain.ErrNotFound
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &existsErr),
		errors.As(err, &csvErr),
		errors.Is(err, domain.ErrContentIncomplete),
		errors.Is(err, domain.ErrNoRecipients):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with its mapped status. Unexpected errors
// are logged and only detailed to the caller in development.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, development bool) {
	status := errorStatus(err)
	if status != http.StatusInternalServerError {
		message, _ := domain.UserMessage(err)
		WriteJSONError(w, message, status)
		return
	}

	log.WithField("error", err.Error()).Error("Request failed")

	body := map[string]string{"error": "Internal server error"}
	if development {
		body["details"] = err.Error()
	}
	writeJSON(w, status, body)
}

// decodeJSONBody reads a small JSON request body into v
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
