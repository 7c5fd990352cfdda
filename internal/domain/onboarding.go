package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_onboarding_service.go -package mocks github.com/Notifuse/newsletter/internal/domain OnboardingService

// DefaultMaxCSVBytes bounds the uploaded contact list
const DefaultMaxCSVBytes int64 = 5 * 1024 * 1024

// OnboardingRequest is the decoded onboarding form
type OnboardingRequest struct {
	CompanyName          string
	WebsiteURL           string
	ContactEmail         string
	Phone                string
	Industry             string
	TargetAudience       string
	AudienceDescription  string
	NewsletterObjectives []string
	PrimaryCTA           string

	ContactListName string
	ContactList     []byte
	// set by the transport so oversized uploads are reported even when
	// the body was truncated while reading
	ContactListSize int64
}

// Validate checks the form and returns a ValidationError carrying the
// message shown to the user. maxCSVBytes <= 0 uses DefaultMaxCSVBytes.
func (r *OnboardingRequest) Validate(maxCSVBytes int64) error {
	r.normalize()

	required := []struct {
		name  string
		value string
	}{
		{"company_name", r.CompanyName},
		{"contact_email", r.ContactEmail},
		{"industry", r.Industry},
		{"audience_description", r.AudienceDescription},
		{"primary_cta", r.PrimaryCTA},
	}

	var missing []string
	for _, field := range required {
		if govalidator.IsNull(field.value) {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return NewValidationError(fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
	}

	if !IsValidEmail(r.ContactEmail) {
		return NewValidationError("Invalid email format")
	}
	if r.WebsiteURL != "" && (!urlPattern.MatchString(r.WebsiteURL) || !govalidator.IsURL(r.WebsiteURL)) {
		return NewValidationError("Please enter a valid URL starting with http:// or https://")
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		return NewValidationError("Please enter a valid phone number")
	}

	if r.ContactListName == "" || (len(r.ContactList) == 0 && r.ContactListSize == 0) {
		return NewValidationError("Missing contact list CSV")
	}
	if !strings.HasSuffix(strings.ToLower(r.ContactListName), ".csv") {
		return NewValidationError("Contact list must be a CSV file")
	}
	if maxCSVBytes <= 0 {
		maxCSVBytes = DefaultMaxCSVBytes
	}
	size := r.ContactListSize
	if size == 0 {
		size = int64(len(r.ContactList))
	}
	if size > maxCSVBytes {
		return NewValidationError(fmt.Sprintf("Contact list must be at most %d MB", maxCSVBytes/(1024*1024)))
	}

	return nil
}

func (r *OnboardingRequest) normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
	r.ContactEmail = strings.ToLower(strings.TrimSpace(r.ContactEmail))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Industry = strings.TrimSpace(r.Industry)
	r.TargetAudience = strings.TrimSpace(r.TargetAudience)
	r.AudienceDescription = strings.TrimSpace(r.AudienceDescription)
	r.PrimaryCTA = strings.TrimSpace(r.PrimaryCTA)
	r.NewsletterObjectives = SplitObjectives(r.NewsletterObjectives)
}

// SplitObjectives flattens objectives that arrive as repeated fields, a
// single comma-separated value or a mix of both
func SplitObjectives(values []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

// ToCompany builds the company entity for a validated request
func (r *OnboardingRequest) ToCompany(id string) *Company {
	return &Company{
		ID:                   id,
		CompanyName:          r.CompanyName,
		WebsiteURL:           r.WebsiteURL,
		ContactEmail:         r.ContactEmail,
		Phone:                r.Phone,
		Industry:             r.Industry,
		TargetAudience:       r.TargetAudience,
		AudienceDescription:  r.AudienceDescription,
		NewsletterObjectives: r.NewsletterObjectives,
		PrimaryCTA:           r.PrimaryCTA,
		Status:               CompanyStatusActive,
	}
}

// OnboardingResult is returned after a successful submission
type OnboardingResult struct {
	Company           *Company    `json:"company"`
	Newsletter        *Newsletter `json:"newsletter"`
	CSVUploadID       string      `json:"csv_upload_id"`
	ContactsProcessed int         `json:"contacts_processed"`
	ContactsFailed    int         `json:"contacts_failed"`
}

// OnboardingService registers a company with its contact list
type OnboardingService interface {
	Submit(ctx context.Context, req *OnboardingRequest) (*OnboardingResult, error)
}
