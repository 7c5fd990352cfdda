package domain

import (
	"context"
	"net/http"
	"strings"
)

//go:generate mockgen -destination mocks/mock_http_client.go -package mocks github.com/Notifuse/newsletter/internal/domain HTTPClient
//go:generate mockgen -destination mocks/mock_email_provider.go -package mocks github.com/Notifuse/newsletter/internal/domain EmailProvider
//go:generate mockgen -destination mocks/mock_email_renderer.go -package mocks github.com/Notifuse/newsletter/internal/domain EmailRenderer

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// EmailMessage is a single transactional email
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Validate checks the message has a recipient, subject and body
func (m EmailMessage) Validate() error {
	if !IsValidEmail(m.To) {
		return NewValidationError("invalid recipient email: " + m.To)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return NewValidationError("email subject is required")
	}
	if m.HTML == "" && m.Text == "" {
		return NewValidationError("email body is required")
	}
	return nil
}

// Sender is the From identity used by every provider
type Sender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// EmailProvider delivers one message through a transactional email service
type EmailProvider interface {
	Send(ctx context.Context, msg EmailMessage) error
	Name() string
}

// NewsletterEmailData is what the email template needs
type NewsletterEmailData struct {
	CompanyName     string
	IndustrySummary string
	Sections        []NewsletterSection
	Year            int
}

// RenderedEmail holds both bodies of a newsletter email
type RenderedEmail struct {
	HTML string
	Text string
}

// EmailRenderer turns newsletter content into email bodies
type EmailRenderer interface {
	Render(ctx context.Context, data NewsletterEmailData) (*RenderedEmail, error)
}
