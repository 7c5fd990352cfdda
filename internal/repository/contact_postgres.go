package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opencensus.io/trace"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new PostgreSQL contact repository
func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

// InsertBatch inserts the contacts in one transaction through a prepared
// statement. Any failure rolls back the whole batch.
func (r *contactRepository) InsertBatch(ctx context.Context, contacts []*domain.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	ctx, span := tracing.StartServiceSpan(ctx, "ContactRepository", "InsertBatch")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("contacts.count", int64(len(contacts))))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (id, company_id, csv_batch_id, name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, contact := range contacts {
		if contact.ID == "" {
			contact.ID = uuid.New().String()
		}
		contact.CreatedAt = now

		if _, err := stmt.ExecContext(ctx,
			contact.ID,
			contact.CompanyID,
			nullString(contact.CSVBatchID),
			contact.Name,
			contact.Email,
			contact.CreatedAt,
		); err != nil {
			tracing.MarkSpanError(ctx, err)
			return fmt.Errorf("failed to insert contact %s: %w", contact.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *contactRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Contact, error) {
	query := `
		SELECT id, company_id, csv_batch_id, name, email, created_at
		FROM contacts
		WHERE company_id = $1
		ORDER BY created_at ASC, email ASC
	`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		var (
			contact domain.Contact
			batchID sql.NullString
		)
		if err := rows.Scan(&contact.ID, &contact.CompanyID, &batchID, &contact.Name, &contact.Email, &contact.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contact.CSVBatchID = batchID.String
		contacts = append(contacts, &contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}
