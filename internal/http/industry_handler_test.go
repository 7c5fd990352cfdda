package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndustryHandler(t *testing.T) {
	mux := http.NewServeMux()
	NewIndustryHandler().RegisterRoutes(mux)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/industries.list", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Industries []struct {
				Value string `json:"value"`
				Label string `json:"label"`
				Icon  string `json:"icon"`
			} `json:"industries"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Industries, 6)
		assert.Equal(t, "education", body.Industries[0].Value)
		assert.NotEmpty(t, body.Industries[0].Label)
	})

	t.Run("single preset", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/industries.list?value=Marketing", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "marketing", body["industry"]["value"])
		assert.Equal(t, "Get Marketing Analysis", body["industry"]["primary_cta"])
	})

	t.Run("unknown preset", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/industries.list?value=mining", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/industries.list", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
