package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Notifuse/newsletter/internal/domain"
)

type csvUploadRepository struct {
	db *sql.DB
}

// NewCSVUploadRepository creates a new PostgreSQL CSV upload repository
func NewCSVUploadRepository(db *sql.DB) domain.CSVUploadRepository {
	return &csvUploadRepository{db: db}
}

func (r *csvUploadRepository) Create(ctx context.Context, upload *domain.CSVUpload) error {
	if upload.ID == "" {
		upload.ID = uuid.New().String()
	}
	if upload.Status == "" {
		upload.Status = domain.CSVUploadStatusProcessing
	}
	now := time.Now().UTC()
	upload.CreatedAt = now
	upload.UpdatedAt = now

	query := `
		INSERT INTO csv_uploads (id, company_id, filename, status, processed_rows, failed_rows, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		upload.ID,
		upload.CompanyID,
		upload.Filename,
		upload.Status,
		upload.ProcessedRows,
		upload.FailedRows,
		nullString(upload.ErrorMessage),
		upload.CreatedAt,
		upload.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create csv upload: %w", err)
	}
	return nil
}

func (r *csvUploadRepository) UpdateResult(ctx context.Context, upload *domain.CSVUpload) error {
	upload.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE csv_uploads
		SET status = $1, processed_rows = $2, failed_rows = $3, error_message = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		upload.Status,
		upload.ProcessedRows,
		upload.FailedRows,
		nullString(upload.ErrorMessage),
		upload.UpdatedAt,
		upload.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update csv upload: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "csv upload", ID: upload.ID}
	}
	return nil
}
