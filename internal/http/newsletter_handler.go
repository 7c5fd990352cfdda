package http

import (
	"net/http"
	"strings"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
)

// NewsletterHandler handles newsletter reads, generation and delivery
type NewsletterHandler struct {
	newsletters domain.NewsletterService
	delivery    domain.DeliveryService
	logger      logger.Logger
	development bool
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(
	newsletters domain.NewsletterService,
	delivery domain.DeliveryService,
	development bool,
	logger logger.Logger,
) *NewsletterHandler {
	return &NewsletterHandler{
		newsletters: newsletters,
		delivery:    delivery,
		logger:      logger,
		development: development,
	}
}

// RegisterRoutes registers the newsletter routes
func (h *NewsletterHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/newsletters.get", h.handleGet)
	mux.HandleFunc("/api/newsletters.latest", h.handleLatest)
	mux.HandleFunc("/api/newsletters.generate", h.handleGenerate)
	mux.HandleFunc("/api/newsletters.draft", h.handleDraft)
	mux.HandleFunc("/api/newsletters.preview", h.handlePreview)
	mux.HandleFunc("/api/newsletters.send", h.handleSend)
}

// newsletterRequest accepts both snake_case and the camelCase keys sent
// by older form clients
type newsletterRequest struct {
	NewsletterID      string `json:"newsletter_id"`
	NewsletterIDCamel string `json:"newsletterId"`
	CompanyID         string `json:"company_id"`
	CompanyIDCamel    string `json:"companyId"`
}

func (r newsletterRequest) newsletterID() string {
	return strings.TrimSpace(firstNonEmpty(r.NewsletterID, r.NewsletterIDCamel))
}

func (r newsletterRequest) companyID() string {
	return strings.TrimSpace(firstNonEmpty(r.CompanyID, r.CompanyIDCamel))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (h *NewsletterHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Invalid newsletter ID", http.StatusBadRequest)
		return
	}

	newsletter, err := h.newsletters.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    newsletter,
	})
}

func (h *NewsletterHandler) handleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	newsletter, err := h.newsletters.Latest(r.Context())
	if err != nil {
		if errorStatus(err) == http.StatusNotFound {
			WriteJSONError(w, "No newsletters found", http.StatusNotFound)
			return
		}
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": newsletter.ID})
}

// decodeRequest reads the POST body shared by the action routes
func (h *NewsletterHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (newsletterRequest, bool) {
	var req newsletterRequest
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *NewsletterHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if req.newsletterID() == "" {
		WriteJSONError(w, "Newsletter ID is required", http.StatusBadRequest)
		return
	}

	content, err := h.newsletters.GenerateContent(r.Context(), req.newsletterID())
	if err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Newsletter content generated successfully",
		"data":    content,
	})
}

func (h *NewsletterHandler) handleDraft(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if req.companyID() == "" {
		WriteJSONError(w, "Company ID is required", http.StatusBadRequest)
		return
	}

	draft, err := h.newsletters.CreateDraftFromInsights(r.Context(), req.companyID())
	if err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    draft,
	})
}

func (h *NewsletterHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if req.newsletterID() == "" {
		WriteJSONError(w, "Newsletter ID is required", http.StatusBadRequest)
		return
	}

	if err := h.delivery.SendPreview(r.Context(), req.newsletterID()); err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Newsletter preview sent successfully",
	})
}

func (h *NewsletterHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if req.newsletterID() == "" {
		WriteJSONError(w, "Newsletter ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.delivery.SendToContacts(r.Context(), req.newsletterID())
	if err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"total_sent":   result.SentCount,
		"failed_count": result.FailedCount,
		"status":       result.Status,
	})
}
