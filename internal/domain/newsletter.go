package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_newsletter_repository.go -package mocks github.com/Notifuse/newsletter/internal/domain NewsletterRepository

type NewsletterStatus string

const (
	NewsletterStatusDraft             NewsletterStatus = "draft"
	NewsletterStatusGenerating        NewsletterStatus = "generating"
	NewsletterStatusPendingApproval   NewsletterStatus = "pending_approval"
	NewsletterStatusRevisionRequested NewsletterStatus = "revision_requested"
	NewsletterStatusApproved          NewsletterStatus = "approved"
	NewsletterStatusScheduled         NewsletterStatus = "scheduled"
	NewsletterStatusSent              NewsletterStatus = "sent"
)

// IsValid reports whether s is a known newsletter status
func (s NewsletterStatus) IsValid() bool {
	switch s {
	case NewsletterStatusDraft, NewsletterStatusGenerating, NewsletterStatusPendingApproval,
		NewsletterStatusRevisionRequested, NewsletterStatusApproved, NewsletterStatusScheduled,
		NewsletterStatusSent:
		return true
	}
	return false
}

type DeliveryStatus string

const (
	DeliveryStatusSuccess        DeliveryStatus = "success"
	DeliveryStatusPartialFailure DeliveryStatus = "partial_failure"
	DeliveryStatusFailure        DeliveryStatus = "failure"
)

// SectionCount is the number of sections a complete newsletter has
const SectionCount = 3

// SectionTopics are the writing briefs for sections 1 to 3
var SectionTopics = [SectionCount]string{
	"Write about current industry trends and innovations",
	"Provide practical tips and best practices",
	"Share success stories or case studies",
}

// NewsletterSection is one titled block of generated copy
type NewsletterSection struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImagePrompt string `json:"image_prompt,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

var headingMarker = regexp.MustCompile(`^#+\s*`)

// ParseSection splits raw LLM output into a section: the first non-empty
// line is the title (markdown heading markers removed), the rest is the
// content.
func ParseSection(raw string) NewsletterSection {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		title := strings.Trim(headingMarker.ReplaceAllString(trimmed, ""), "* ")
		// "**Title:** Growth" leaves bold markers after the prefix
		title = strings.Trim(strings.TrimPrefix(title, "Title:"), "* ")
		return NewsletterSection{
			Title:   title,
			Content: strings.TrimSpace(strings.Join(lines[i+1:], "\n")),
		}
	}

	return NewsletterSection{}
}

// Newsletter is a generated issue for one company
type Newsletter struct {
	ID                string              `json:"id"`
	CompanyID         string              `json:"company_id"`
	IndustryInsightID string              `json:"industry_insight_id,omitempty"`
	Title             string              `json:"title"`
	Status            NewsletterStatus    `json:"status"`
	IndustrySummary   string              `json:"industry_summary,omitempty"`
	Sections          []NewsletterSection `json:"sections"`
	SentAt            *time.Time          `json:"sent_at,omitempty"`
	SentCount         int                 `json:"sent_count"`
	FailedCount       int                 `json:"failed_count"`
	LastSentStatus    DeliveryStatus      `json:"last_sent_status,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// NewDraftNewsletter returns the empty draft created at onboarding
func NewDraftNewsletter(id string, company *Company) *Newsletter {
	return &Newsletter{
		ID:        id,
		CompanyID: company.ID,
		Title:     fmt.Sprintf("%s Newsletter Draft", company.CompanyName),
		Status:    NewsletterStatusDraft,
		Sections:  []NewsletterSection{},
	}
}

// Validate performs validation on the newsletter fields
func (n *Newsletter) Validate() error {
	if n.ID == "" {
		return NewValidationError("newsletter id is required")
	}
	if n.CompanyID == "" {
		return NewValidationError("newsletter company_id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return NewValidationError("newsletter title is required")
	}
	if !n.Status.IsValid() {
		return NewValidationError(fmt.Sprintf("invalid newsletter status: %s", n.Status))
	}
	if len(n.Sections) > SectionCount {
		return NewValidationError(fmt.Sprintf("a newsletter has at most %d sections", SectionCount))
	}
	return nil
}

// HasContent reports whether all sections carry copy
func (n *Newsletter) HasContent() bool {
	if len(n.Sections) < SectionCount {
		return false
	}
	for _, s := range n.Sections {
		if strings.TrimSpace(s.Content) == "" {
			return false
		}
	}
	return true
}

// DeliveryResult is the outcome of sending a newsletter to its contacts
type DeliveryResult struct {
	SentAt      time.Time      `json:"sent_at"`
	SentCount   int            `json:"total_sent"`
	FailedCount int            `json:"failed_count"`
	Status      DeliveryStatus `json:"status"`
}

// NewDeliveryResult derives the delivery status from the counters
func NewDeliveryResult(sent, failed int, at time.Time) DeliveryResult {
	status := DeliveryStatusPartialFailure
	switch {
	case failed == 0:
		status = DeliveryStatusSuccess
	case sent == 0:
		status = DeliveryStatusFailure
	}
	return DeliveryResult{SentAt: at, SentCount: sent, FailedCount: failed, Status: status}
}

// NewsletterWithCompany is a newsletter joined with the company it belongs to
type NewsletterWithCompany struct {
	Newsletter
	Company *Company `json:"company"`
}

// NewsletterRepository is the persistence port for newsletters
type NewsletterRepository interface {
	Create(ctx context.Context, newsletter *Newsletter) error
	GetWithCompany(ctx context.Context, id string) (*NewsletterWithCompany, error)
	GetLatest(ctx context.Context) (*Newsletter, error)
	UpdateStatus(ctx context.Context, id string, status NewsletterStatus) error
	UpdateContent(ctx context.Context, id string, summary string, sections []NewsletterSection, status NewsletterStatus) error
	RecordDelivery(ctx context.Context, id string, result DeliveryResult) error
}
