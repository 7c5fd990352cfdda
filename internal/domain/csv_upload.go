package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_csv_upload_repository.go -package mocks github.com/Notifuse/newsletter/internal/domain CSVUploadRepository

type CSVUploadStatus string

const (
	CSVUploadStatusProcessing CSVUploadStatus = "processing"
	CSVUploadStatusCompleted  CSVUploadStatus = "completed"
	CSVUploadStatusFailed     CSVUploadStatus = "failed"
)

// CSVUpload tracks one contact-list import
type CSVUpload struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Filename      string          `json:"filename"`
	Status        CSVUploadStatus `json:"status"`
	ProcessedRows int             `json:"processed_rows"`
	FailedRows    int             `json:"failed_rows"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Finish sets the terminal status from the insert counters. The upload
// fails only when nothing could be stored.
func (u *CSVUpload) Finish(processed, failed int) {
	u.ProcessedRows = processed
	u.FailedRows = failed
	u.ErrorMessage = ""

	if processed == 0 && failed > 0 {
		u.Status = CSVUploadStatusFailed
	} else {
		u.Status = CSVUploadStatusCompleted
	}
	if failed > 0 {
		u.ErrorMessage = fmt.Sprintf("Failed to insert %d contacts", failed)
	}
}

// Fail marks the upload as failed with a reason
func (u *CSVUpload) Fail(reason string) {
	u.Status = CSVUploadStatusFailed
	u.ErrorMessage = reason
}

// Validate performs validation on the upload fields
func (u *CSVUpload) Validate() error {
	if u.CompanyID == "" {
		return NewValidationError("csv upload company_id is required")
	}
	if !strings.HasSuffix(strings.ToLower(u.Filename), ".csv") {
		return NewValidationError("Contact list must be a CSV file")
	}
	switch u.Status {
	case CSVUploadStatusProcessing, CSVUploadStatusCompleted, CSVUploadStatusFailed:
	default:
		return NewValidationError(fmt.Sprintf("invalid csv upload status: %s", u.Status))
	}
	return nil
}

// CSVUploadRepository is the persistence port for CSV uploads
type CSVUploadRepository interface {
	Create(ctx context.Context, upload *CSVUpload) error
	// UpdateResult stores status, counters and error message
	UpdateResult(ctx context.Context, upload *CSVUpload) error
}
