package http

import (
	"net/http"

	"github.com/Notifuse/newsletter/internal/domain"
)

// IndustryHandler serves the presets used to pre-fill the onboarding form
type IndustryHandler struct{}

// NewIndustryHandler creates a new industry handler
func NewIndustryHandler() *IndustryHandler {
	return &IndustryHandler{}
}

// RegisterRoutes registers the industry routes
func (h *IndustryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/industries.list", h.handleList)
}

func (h *IndustryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if value := r.URL.Query().Get("value"); value != "" {
		template, ok := domain.GetIndustryTemplate(value)
		if !ok {
			WriteJSONError(w, "Industry not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"industry": template})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"industries": domain.ListIndustryOptions(),
	})
}
