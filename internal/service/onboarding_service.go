package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/contactcsv"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// DefaultImportBatchSize is the number of contacts inserted per transaction
const DefaultImportBatchSize = 100

// OnboardingService registers a company, imports its contact list and
// creates the first newsletter draft
type OnboardingService struct {
	companyRepo    domain.CompanyRepository
	uploadRepo     domain.CSVUploadRepository
	contactRepo    domain.ContactRepository
	newsletterRepo domain.NewsletterRepository
	logger         logger.Logger
	batchSize      int
	maxCSVBytes    int64
}

// OnboardingServiceConfig holds the dependencies of OnboardingService
type OnboardingServiceConfig struct {
	CompanyRepo    domain.CompanyRepository
	UploadRepo     domain.CSVUploadRepository
	ContactRepo    domain.ContactRepository
	NewsletterRepo domain.NewsletterRepository
	Logger         logger.Logger
	BatchSize      int
	MaxCSVBytes    int64
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(cfg OnboardingServiceConfig) *OnboardingService {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}
	maxBytes := cfg.MaxCSVBytes
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxCSVBytes
	}

	return &OnboardingService{
		companyRepo:    cfg.CompanyRepo,
		uploadRepo:     cfg.UploadRepo,
		contactRepo:    cfg.ContactRepo,
		newsletterRepo: cfg.NewsletterRepo,
		logger:         cfg.Logger,
		batchSize:      batchSize,
		maxCSVBytes:    maxBytes,
	}
}

var _ domain.OnboardingService = (*OnboardingService)(nil)

// Submit implements domain.OnboardingService
func (s *OnboardingService) Submit(ctx context.Context, req *domain.OnboardingRequest) (*domain.OnboardingResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "OnboardingService", "Submit")
	defer span.End()

	if err := req.Validate(s.maxCSVBytes); err != nil {
		return nil, err
	}

	company := req.ToCompany(uuid.New().String())
	if err := company.Validate(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		var exists *domain.ErrCompanyExists
		if !errors.As(err, &exists) {
			s.logger.WithField("error", err.Error()).Error("Failed to create company")
			tracing.MarkSpanError(ctx, err)
		}
		return nil, err
	}

	log := s.logger.WithField("company_id", company.ID)
	tracing.AddAttribute(ctx, "company_id", company.ID)

	upload := &domain.CSVUpload{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Filename:  req.ContactListName,
		Status:    domain.CSVUploadStatusProcessing,
	}
	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		log.WithField("error", err.Error()).Error("Failed to create CSV upload record")
		return nil, fmt.Errorf("failed to create csv upload: %w", err)
	}

	parsed, err := contactcsv.Parse(bytes.NewReader(req.ContactList))
	if err != nil {
		upload.Fail(err.Error())
		if updateErr := s.uploadRepo.UpdateResult(ctx, upload); updateErr != nil {
			log.WithField("error", updateErr.Error()).Error("Failed to mark CSV upload as failed")
		}
		return nil, &domain.ErrCSVParse{Reason: err.Error()}
	}

	log.WithFields(map[string]interface{}{
		"rows":       parsed.Stats.Rows,
		"accepted":   parsed.Stats.Accepted,
		"invalid":    parsed.Stats.Invalid,
		"duplicates": parsed.Stats.Duplicates,
	}).Info("Parsed contact list")

	processed, failed := s.importContacts(ctx, log, company.ID, upload.ID, parsed.Contacts)

	upload.Finish(processed, failed)
	if err := s.uploadRepo.UpdateResult(ctx, upload); err != nil {
		log.WithField("error", err.Error()).Error("Failed to update CSV upload record")
		return nil, fmt.Errorf("failed to update csv upload: %w", err)
	}

	newsletter := domain.NewDraftNewsletter(uuid.New().String(), company)
	if err := s.newsletterRepo.Create(ctx, newsletter); err != nil {
		log.WithField("error", err.Error()).Error("Failed to create newsletter draft")
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}

	tracing.AddAttribute(ctx, "contacts_processed", processed)
	tracing.AddAttribute(ctx, "contacts_failed", failed)
	tracing.RecordContactsImported(ctx, processed)

	return &domain.OnboardingResult{
		Company:           company,
		Newsletter:        newsletter,
		CSVUploadID:       upload.ID,
		ContactsProcessed: processed,
		ContactsFailed:    failed,
	}, nil
}

// importContacts inserts rows batch by batch. A failed batch is counted
// and skipped.
func (s *OnboardingService) importContacts(ctx context.Context, log logger.Logger, companyID, uploadID string, rows []contactcsv.Row) (processed, failed int) {
	for i, batch := range contactcsv.Batches(rows, s.batchSize) {
		contacts := make([]*domain.Contact, 0, len(batch))
		for _, row := range batch {
			contact := &domain.Contact{
				CompanyID:  companyID,
				CSVBatchID: uploadID,
				Name:       row.Name,
				Email:      row.Email,
			}
			contact.Normalize()
			contacts = append(contacts, contact)
		}

		if err := s.contactRepo.InsertBatch(ctx, contacts); err != nil {
			log.WithFields(map[string]interface{}{
				"batch": i,
				"size":  len(contacts),
				"error": err.Error(),
			}).Error("Failed to insert contact batch")
			failed += len(contacts)
			continue
		}
		processed += len(contacts)
	}
	return processed, failed
}
