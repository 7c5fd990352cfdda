package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
)

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("Invalid email format"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("submit: %w", domain.NewValidationError("x")), http.StatusBadRequest},
		{"duplicate company", &domain.ErrCompanyExists{Email: "a@b.co"}, http.StatusBadRequest},
		{"csv", &domain.ErrCSVParse{Reason: "No valid contacts found in CSV"}, http.StatusBadRequest},
		{"incomplete", domain.ErrContentIncomplete, http.StatusBadRequest},
		{"no recipients", domain.ErrNoRecipients, http.StatusBadRequest},
		{"not found", &domain.ErrNotFound{Entity: "newsletter", ID: "1"}, http.StatusNotFound},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, errorStatus(tt.err))
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	log := logger.NewTestLogger(t)

	t.Run("known error shows its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeServiceError(w, log, &domain.ErrCompanyExists{}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"A company with this email already exists"}`, w.Body.String())
	})

	t.Run("internal error hides details in production", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeServiceError(w, log, errors.New("pq: password authentication failed"), false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("internal error shows details in development", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeServiceError(w, log, errors.New("pq: password authentication failed"), true)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Internal server error", body["error"])
		assert.Equal(t, "pq: password authentication failed", body["details"])
	})
}
