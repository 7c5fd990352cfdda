package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_newsletter_service.go -package mocks github.com/Notifuse/newsletter/internal/domain NewsletterService
//go:generate mockgen -destination mocks/mock_delivery_service.go -package mocks github.com/Notifuse/newsletter/internal/domain DeliveryService

// GeneratedContent is returned by GenerateContent
type GeneratedContent struct {
	IndustrySummary string              `json:"industry_summary"`
	Sections        []NewsletterSection `json:"sections"`
}

// InsightDraft is returned by CreateDraftFromInsights
type InsightDraft struct {
	Newsletter *Newsletter      `json:"newsletter"`
	Insight    *IndustryInsight `json:"industry_insight"`
}

// NewsletterService reads newsletters and generates their content
type NewsletterService interface {
	Get(ctx context.Context, id string) (*NewsletterWithCompany, error)
	Latest(ctx context.Context) (*Newsletter, error)
	// GenerateContent writes the industry summary and the three sections
	// of an existing newsletter
	GenerateContent(ctx context.Context, newsletterID string) (*GeneratedContent, error)
	// CreateDraftFromInsights creates a new draft from stored industry
	// insight bullets
	CreateDraftFromInsights(ctx context.Context, companyID string) (*InsightDraft, error)
}

// DeliveryService emails newsletters
type DeliveryService interface {
	// SendPreview emails the draft to the company's own contact address
	SendPreview(ctx context.Context, newsletterID string) error
	// SendToContacts emails the newsletter to every contact of its company
	SendToContacts(ctx context.Context, newsletterID string) (*DeliveryResult, error)
}
