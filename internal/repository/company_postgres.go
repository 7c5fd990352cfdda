package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

const companyColumns = `id, company_name, website_url, contact_email, phone, industry, target_audience,
		audience_description, newsletter_objectives, primary_cta, status, created_at, updated_at`

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new PostgreSQL company repository
func NewCompanyRepository(db *sql.DB) domain.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	ctx, span := tracing.StartServiceSpan(ctx, "CompanyRepository", "Create")
	defer span.End()

	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	if company.Status == "" {
		company.Status = domain.CompanyStatusActive
	}
	if company.NewsletterObjectives == nil {
		company.NewsletterObjectives = []string{}
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	objectives, err := json.Marshal(company.NewsletterObjectives)
	if err != nil {
		return fmt.Errorf("failed to marshal newsletter objectives: %w", err)
	}

	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.db.ExecContext(ctx, query,
		company.ID,
		company.CompanyName,
		nullString(company.WebsiteURL),
		company.ContactEmail,
		nullString(company.Phone),
		company.Industry,
		nullString(company.TargetAudience),
		company.AudienceDescription,
		objectives,
		company.PrimaryCTA,
		company.Status,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			tracing.MarkSpanError(ctx, err)
			return &domain.ErrCompanyExists{Email: company.ContactEmail}
		}
		tracing.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := domain.ScanCompany(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "company", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
