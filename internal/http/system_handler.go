package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Notifuse/newsletter/pkg/logger"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the health and echo endpoints
type SystemHandler struct {
	db      Pinger
	version string
	logger  logger.Logger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger, version string, logger logger.Logger) *SystemHandler {
	return &SystemHandler{db: db, version: version, logger: logger}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.handleHealth)
	mux.HandleFunc("/api/echo", h.handleEcho)
}

func (h *SystemHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WithField("error", err.Error()).Error("Database health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "error",
			"database": "unreachable",
			"version":  h.version,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
		"version":  h.version,
	})
}

// handleEcho returns the request back; it is used to check that form posts
// reach the API through proxies and CORS
func (h *SystemHandler) handleEcho(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var body interface{}
	if len(raw) > 0 {
		if json.Valid(raw) {
			body = json.RawMessage(raw)
		} else {
			body = string(raw)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Test endpoint working",
		"method":  r.Method,
		"query":   r.URL.Query(),
		"body":    body,
	})
}
