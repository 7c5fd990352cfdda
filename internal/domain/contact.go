package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_contact_repository.go -package mocks github.com/Notifuse/newsletter/internal/domain ContactRepository

// Contact is one recipient imported from a company's CSV list
type Contact struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	CSVBatchID string    `json:"csv_batch_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

// Normalize trims the name and lowercases the email
func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
}

// Validate performs validation on the contact fields
func (c *Contact) Validate() error {
	if c.CompanyID == "" {
		return NewValidationError("contact company_id is required")
	}
	if !IsValidEmail(c.Email) {
		return NewValidationError("invalid contact email: " + c.Email)
	}
	return nil
}

// ContactRepository is the persistence port for contacts
type ContactRepository interface {
	// InsertBatch inserts all contacts in a single transaction
	InsertBatch(ctx context.Context, contacts []*Contact) error
	ListByCompany(ctx context.Context, companyID string) ([]*Contact, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}
