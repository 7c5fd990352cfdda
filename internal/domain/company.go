package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_company_repository.go -package mocks github.com/Notifuse/newsletter/internal/domain CompanyRepository

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	urlPattern   = regexp.MustCompile(`^https?://`)
)

// IsValidEmail reports whether s has the shape local@host.tld with no
// whitespace
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Company is the business that onboarded through the form
type Company struct {
	ID                   string        `json:"id"`
	CompanyName          string        `json:"company_name"`
	WebsiteURL           string        `json:"website_url,omitempty"`
	ContactEmail         string        `json:"contact_email"`
	Phone                string        `json:"phone,omitempty"`
	Industry             string        `json:"industry"`
	TargetAudience       string        `json:"target_audience,omitempty"`
	AudienceDescription  string        `json:"audience_description"`
	NewsletterObjectives []string      `json:"newsletter_objectives"`
	PrimaryCTA           string        `json:"primary_cta"`
	Status               CompanyStatus `json:"status"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// Validate performs validation on the company fields
func (c *Company) Validate() error {
	if c.ID == "" {
		return NewValidationError("company id is required")
	}
	if !govalidator.IsUUID(c.ID) {
		return NewValidationError("company id must be a UUID")
	}
	if strings.TrimSpace(c.CompanyName) == "" {
		return NewValidationError("company_name is required")
	}
	if len(c.CompanyName) > 255 {
		return NewValidationError("company_name must be at most 255 characters")
	}
	if !IsValidEmail(c.ContactEmail) {
		return NewValidationError("Invalid email format")
	}
	if c.WebsiteURL != "" && (!urlPattern.MatchString(c.WebsiteURL) || !govalidator.IsURL(c.WebsiteURL)) {
		return NewValidationError("website_url must be a valid http(s) URL")
	}
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		return NewValidationError("phone contains invalid characters")
	}
	switch c.Status {
	case CompanyStatusActive, CompanyStatusInactive:
	default:
		return NewValidationError(fmt.Sprintf("invalid company status: %s", c.Status))
	}
	return nil
}

// TargetAudienceOrDefault is used in prompts
func (c *Company) TargetAudienceOrDefault() string {
	if strings.TrimSpace(c.TargetAudience) == "" {
		return "general audience"
	}
	return c.TargetAudience
}

// ScanCompany scans a company row in the column order used by the repository
func ScanCompany(scanner interface {
	Scan(dest ...interface{}) error
}) (*Company, error) {
	var (
		c          Company
		website    sql.NullString
		phone      sql.NullString
		audience   sql.NullString
		objectives []byte
	)

	if err := scanner.Scan(
		&c.ID,
		&c.CompanyName,
		&website,
		&c.ContactEmail,
		&phone,
		&c.Industry,
		&audience,
		&c.AudienceDescription,
		&objectives,
		&c.PrimaryCTA,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.WebsiteURL = website.String
	c.Phone = phone.String
	c.TargetAudience = audience.String
	c.NewsletterObjectives = []string{}
	if len(objectives) > 0 {
		if err := json.Unmarshal(objectives, &c.NewsletterObjectives); err != nil {
			return nil, fmt.Errorf("failed to decode newsletter_objectives: %w", err)
		}
	}

	return &c, nil
}

// CompanyRepository is the persistence port for companies
type CompanyRepository interface {
	// Create inserts the company. Returns *ErrCompanyExists on duplicate email.
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
}
