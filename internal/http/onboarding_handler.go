package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/internal/http/middleware"
	"github.com/Notifuse/newsletter/pkg/logger"
)

// room for the text fields next to the CSV file
const formOverheadBytes = 1 << 20

// OnboardingHandler handles the onboarding form
type OnboardingHandler struct {
	service     domain.OnboardingService
	limiter     middleware.Limiter
	logger      logger.Logger
	maxCSVBytes int64
	development bool
}

// NewOnboardingHandler creates a new onboarding handler. A nil limiter
// disables throttling.
func NewOnboardingHandler(
	service domain.OnboardingService,
	limiter middleware.Limiter,
	maxCSVBytes int64,
	development bool,
	logger logger.Logger,
) *OnboardingHandler {
	if maxCSVBytes <= 0 {
		maxCSVBytes = domain.DefaultMaxCSVBytes
	}
	return &OnboardingHandler{
		service:     service,
		limiter:     limiter,
		logger:      logger,
		maxCSVBytes: maxCSVBytes,
		development: development,
	}
}

// RateLimitNamespace is the rate limiter policy used for submissions
const RateLimitNamespace = "onboarding"

// RegisterRoutes registers the onboarding routes
func (h *OnboardingHandler) RegisterRoutes(mux *http.ServeMux) {
	var handler http.Handler = http.HandlerFunc(h.handleSubmit)
	if h.limiter != nil {
		handler = middleware.RateLimit(h.limiter, RateLimitNamespace)(handler)
	}
	mux.Handle("/api/onboarding.submit", handler)
}

func (h *OnboardingHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := h.parseForm(w, r)
	if err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, h.development)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"company_id":         result.Company.ID,
		"contacts_processed": result.ContactsProcessed,
		"contacts_failed":    result.ContactsFailed,
	}).Info("Company onboarded")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// parseForm decodes the multipart form. Errors are validation errors.
func (h *OnboardingHandler) parseForm(w http.ResponseWriter, r *http.Request) (*domain.OnboardingRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxCSVBytes+formOverheadBytes)

	if err := r.ParseMultipartForm(h.maxCSVBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, domain.NewValidationError(fmt.Sprintf("Contact list must be at most %d MB", h.maxCSVBytes/(1024*1024)))
		}
		h.logger.WithField("error", err.Error()).Warn("Failed to parse onboarding form")
		return nil, domain.NewValidationError("Invalid form data")
	}

	defer func() { _ = r.MultipartForm.RemoveAll() }()

	values := r.MultipartForm.Value
	objectives := append([]string{}, values["newsletter_objectives"]...)
	objectives = append(objectives, values["newsletter_objectives[]"]...)

	req := &domain.OnboardingRequest{
		CompanyName:          r.FormValue("company_name"),
		WebsiteURL:           r.FormValue("website_url"),
		ContactEmail:         r.FormValue("contact_email"),
		Phone:                r.FormValue("phone"),
		Industry:             r.FormValue("industry"),
		TargetAudience:       r.FormValue("target_audience"),
		AudienceDescription:  r.FormValue("audience_description"),
		NewsletterObjectives: objectives,
		PrimaryCTA:           r.FormValue("primary_cta"),
	}

	file, header, err := r.FormFile("contact_list")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return nil, domain.NewValidationError("Invalid contact list upload")
	}
	defer file.Close()

	req.ContactListName = header.Filename
	req.ContactListSize = header.Size
	if header.Size > h.maxCSVBytes {
		// validation reports the size, no need to read the content
		return req, nil
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxCSVBytes+1))
	if err != nil {
		return nil, domain.NewValidationError("Invalid contact list upload")
	}
	req.ContactList = data

	return req, nil
}
