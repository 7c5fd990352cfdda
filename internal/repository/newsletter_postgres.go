package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.opencensus.io/trace"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

var newsletterPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var newsletterColumns = []string{
	"n.id", "n.company_id", "n.industry_insight_id", "n.title", "n.status", "n.industry_summary",
	"n.sections", "n.sent_at", "n.sent_count", "n.failed_count", "n.last_sent_status",
	"n.created_at", "n.updated_at",
}

var joinedCompanyColumns = []string{
	"c.id", "c.company_name", "c.website_url", "c.contact_email", "c.phone", "c.industry",
	"c.target_audience", "c.audience_description", "c.newsletter_objectives", "c.primary_cta",
	"c.status", "c.created_at", "c.updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

var _ domain.NewsletterRepository = (*NewsletterRepository)(nil)

// NewsletterRepository stores newsletters in PostgreSQL
type NewsletterRepository struct {
	db *sql.DB
}

// NewNewsletterRepository creates a new PostgreSQL newsletter repository
func NewNewsletterRepository(db *sql.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Create(ctx context.Context, newsletter *domain.Newsletter) error {
	if newsletter.ID == "" {
		newsletter.ID = uuid.New().String()
	}
	if newsletter.Status == "" {
		newsletter.Status = domain.NewsletterStatusDraft
	}
	if newsletter.Sections == nil {
		newsletter.Sections = []domain.NewsletterSection{}
	}
	now := time.Now().UTC()
	newsletter.CreatedAt = now
	newsletter.UpdatedAt = now

	sections, err := json.Marshal(newsletter.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	query, args, err := newsletterPsql.
		Insert("newsletters").
		Columns("id", "company_id", "industry_insight_id", "title", "status", "industry_summary", "sections", "created_at", "updated_at").
		Values(
			newsletter.ID,
			newsletter.CompanyID,
			nullString(newsletter.IndustryInsightID),
			newsletter.Title,
			newsletter.Status,
			nullString(newsletter.IndustrySummary),
			sections,
			newsletter.CreatedAt,
			newsletter.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create newsletter: %w", err)
	}
	return nil
}

// GetWithCompany loads a newsletter and its company in one query
func (r *NewsletterRepository) GetWithCompany(ctx context.Context, id string) (*domain.NewsletterWithCompany, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "NewsletterRepository", "GetWithCompany")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("newsletter.id", id))

	query, args, err := newsletterPsql.
		Select(append(append([]string{}, newsletterColumns...), joinedCompanyColumns...)...).
		From("newsletters n").
		Join("companies c ON c.id = n.company_id").
		Where(sq.Eq{"n.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var nr newsletterRow
	company, err := domain.ScanCompany(prefixedScanner{row: row, head: nr.targets()})
	if err == sql.ErrNoRows {
		span.SetStatus(trace.Status{Code: trace.StatusCodeNotFound, Message: "newsletter not found"})
		return nil, &domain.ErrNotFound{Entity: "newsletter", ID: id}
	}
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to get newsletter: %w", err)
	}

	newsletter, err := nr.toDomain()
	if err != nil {
		return nil, err
	}

	result := domain.NewsletterWithCompany{Newsletter: *newsletter, Company: company}
	return &result, nil
}

// GetLatest returns the most recently created newsletter
func (r *NewsletterRepository) GetLatest(ctx context.Context) (*domain.Newsletter, error) {
	query, args, err := newsletterPsql.
		Select(newsletterColumns...).
		From("newsletters n").
		OrderBy("n.created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	newsletter, err := scanNewsletter(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "newsletter"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest newsletter: %w", err)
	}
	return newsletter, nil
}

func (r *NewsletterRepository) UpdateStatus(ctx context.Context, id string, status domain.NewsletterStatus) error {
	return r.update(ctx, id, sq.Eq{"status": status})
}

// UpdateContent stores the generated summary and sections with a new status
func (r *NewsletterRepository) UpdateContent(ctx context.Context, id string, summary string, sections []domain.NewsletterSection, status domain.NewsletterStatus) error {
	if sections == nil {
		sections = []domain.NewsletterSection{}
	}
	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	return r.update(ctx, id, sq.Eq{
		"industry_summary": nullString(summary),
		"sections":         sectionsJSON,
		"status":           status,
	})
}

// RecordDelivery marks the newsletter sent and stores the counters
func (r *NewsletterRepository) RecordDelivery(ctx context.Context, id string, result domain.DeliveryResult) error {
	return r.update(ctx, id, sq.Eq{
		"status":           domain.NewsletterStatusSent,
		"sent_at":          result.SentAt,
		"sent_count":       result.SentCount,
		"failed_count":     result.FailedCount,
		"last_sent_status": result.Status,
	})
}

func (r *NewsletterRepository) update(ctx context.Context, id string, values sq.Eq) error {
	builder := newsletterPsql.Update("newsletters").
		SetMap(map[string]interface{}(values)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update newsletter: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "newsletter", ID: id}
	}
	return nil
}

// newsletterRow holds the raw column values of a newsletters row
type newsletterRow struct {
	n          domain.Newsletter
	insightID  sql.NullString
	summary    sql.NullString
	sections   []byte
	sentAt     sql.NullTime
	lastStatus sql.NullString
}

func (r *newsletterRow) targets() []interface{} {
	return []interface{}{
		&r.n.ID, &r.n.CompanyID, &r.insightID, &r.n.Title, &r.n.Status, &r.summary,
		&r.sections, &r.sentAt, &r.n.SentCount, &r.n.FailedCount, &r.lastStatus,
		&r.n.CreatedAt, &r.n.UpdatedAt,
	}
}

func (r *newsletterRow) toDomain() (*domain.Newsletter, error) {
	n := r.n
	n.IndustryInsightID = r.insightID.String
	n.IndustrySummary = r.summary.String
	n.LastSentStatus = domain.DeliveryStatus(r.lastStatus.String)
	if r.sentAt.Valid {
		sentAt := r.sentAt.Time
		n.SentAt = &sentAt
	}

	n.Sections = []domain.NewsletterSection{}
	if len(r.sections) > 0 {
		if err := json.Unmarshal(r.sections, &n.Sections); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
		}
	}
	return &n, nil
}

func scanNewsletter(row rowScanner) (*domain.Newsletter, error) {
	var nr newsletterRow
	if err := row.Scan(nr.targets()...); err != nil {
		return nil, err
	}
	return nr.toDomain()
}

// prefixedScanner scans head before the destinations passed to Scan, so a
// joined row can be split between two scan functions
type prefixedScanner struct {
	row  rowScanner
	head []interface{}
}

func (s prefixedScanner) Scan(dest ...interface{}) error {
	return s.row.Scan(append(append([]interface{}{}, s.head...), dest...)...)
}
