package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

const (
	DefaultSendConcurrency   = 10
	DefaultSendRatePerSecond = 10
)

// DeliveryService renders newsletters and sends them through the
// configured email provider
type DeliveryService struct {
	newsletterRepo domain.NewsletterRepository
	contactRepo    domain.ContactRepository
	renderer       domain.EmailRenderer
	provider       domain.EmailProvider
	logger         logger.Logger
	concurrency    int
	ratePerSecond  float64
	now            func() time.Time
}

// DeliveryServiceConfig holds the dependencies of DeliveryService
type DeliveryServiceConfig struct {
	NewsletterRepo domain.NewsletterRepository
	ContactRepo    domain.ContactRepository
	Renderer       domain.EmailRenderer
	Provider       domain.EmailProvider
	Logger         logger.Logger
	Concurrency    int
	// RatePerSecond <= 0 disables throttling
	RatePerSecond float64
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(cfg DeliveryServiceConfig) *DeliveryService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultSendConcurrency
	}

	return &DeliveryService{
		newsletterRepo: cfg.NewsletterRepo,
		contactRepo:    cfg.ContactRepo,
		renderer:       cfg.Renderer,
		provider:       cfg.Provider,
		logger:         cfg.Logger,
		concurrency:    concurrency,
		ratePerSecond:  cfg.RatePerSecond,
		now:            time.Now,
	}
}

var _ domain.DeliveryService = (*DeliveryService)(nil)

// SendPreview implements domain.DeliveryService
func (s *DeliveryService) SendPreview(ctx context.Context, newsletterID string) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DeliveryService", "SendPreview")
	defer func() { tracing.EndSpan(span, err) }()

	newsletter, err := s.load(ctx, newsletterID)
	if err != nil {
		return err
	}
	email, err := s.render(ctx, newsletter)
	if err != nil {
		return err
	}
	company := newsletter.Company

	err = s.provider.Send(ctx, domain.EmailMessage{
		To:      company.ContactEmail,
		ToName:  company.CompanyName,
		Subject: fmt.Sprintf("Newsletter Draft - %s", company.CompanyName),
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"newsletter_id": newsletterID,
			"error":         err.Error(),
		}).Error("Failed to send newsletter preview")
		tracing.RecordDelivery(ctx, s.provider.Name(), 0, 1)
		return fmt.Errorf("failed to send preview: %w", err)
	}
	tracing.RecordDelivery(ctx, s.provider.Name(), 1, 0)

	if err := s.newsletterRepo.UpdateStatus(ctx, newsletterID, domain.NewsletterStatusPendingApproval); err != nil {
		return fmt.Errorf("failed to update newsletter status: %w", err)
	}
	return nil
}

// SendToContacts implements domain.DeliveryService
func (s *DeliveryService) SendToContacts(ctx context.Context, newsletterID string) (result *domain.DeliveryResult, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DeliveryService", "SendToContacts")
	defer func() { tracing.EndSpan(span, err) }()

	newsletter, err := s.load(ctx, newsletterID)
	if err != nil {
		return nil, err
	}
	company := newsletter.Company
	log := s.logger.WithFields(map[string]interface{}{
		"newsletter_id": newsletterID,
		"company_id":    company.ID,
		"provider":      s.provider.Name(),
	})

	// skip rendering when there is nobody to send to
	count, err := s.contactRepo.CountByCompany(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrNoRecipients
	}

	email, err := s.render(ctx, newsletter)
	if err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	if len(contacts) == 0 {
		return nil, domain.ErrNoRecipients
	}
	tracing.AddAttribute(ctx, "recipients", len(contacts))

	subject := fmt.Sprintf("%s - Industry Newsletter", company.CompanyName)

	var limiter *rate.Limiter
	if s.ratePerSecond > 0 {
		burst := int(s.ratePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.ratePerSecond), burst)
	}

	var sent, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, contact := range contacts {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					// only cancellation gets here; the remaining contacts count as failed
					failed.Add(1)
					return nil
				}
			}

			err := s.provider.Send(gctx, domain.EmailMessage{
				To:      contact.Email,
				ToName:  contact.Name,
				Subject: subject,
				HTML:    email.HTML,
				Text:    email.Text,
			})
			if err != nil {
				log.WithFields(map[string]interface{}{
					"to":    contact.Email,
					"error": err.Error(),
				}).Error("Failed to send newsletter")
				failed.Add(1)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	delivery := domain.NewDeliveryResult(int(sent.Load()), int(failed.Load()), s.now().UTC())
	tracing.RecordDelivery(ctx, s.provider.Name(), delivery.SentCount, delivery.FailedCount)

	if err := s.newsletterRepo.RecordDelivery(context.WithoutCancel(ctx), newsletterID, delivery); err != nil {
		log.WithField("error", err.Error()).Error("Failed to record newsletter delivery")
		return nil, fmt.Errorf("failed to update newsletter: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"sent":   delivery.SentCount,
		"failed": delivery.FailedCount,
		"status": string(delivery.Status),
	}).Info("Newsletter delivered")

	return &delivery, nil
}

// load fetches the newsletter with its company and checks it is fully
// generated
func (s *DeliveryService) load(ctx context.Context, newsletterID string) (*domain.NewsletterWithCompany, error) {
	if newsletterID == "" {
		return nil, domain.NewValidationError("Newsletter ID is required")
	}

	newsletter, err := s.newsletterRepo.GetWithCompany(ctx, newsletterID)
	if err != nil {
		return nil, err
	}
	if !newsletter.HasContent() {
		return nil, domain.ErrContentIncomplete
	}
	return newsletter, nil
}

func (s *DeliveryService) render(ctx context.Context, newsletter *domain.NewsletterWithCompany) (*domain.RenderedEmail, error) {
	email, err := s.renderer.Render(ctx, domain.NewsletterEmailData{
		CompanyName:     newsletter.Company.CompanyName,
		IndustrySummary: newsletter.IndustrySummary,
		Sections:        newsletter.Sections,
		Year:            s.now().Year(),
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"newsletter_id": newsletter.ID,
			"error":         err.Error(),
		}).Error("Failed to render newsletter email")
		return nil, fmt.Errorf("failed to render newsletter: %w", err)
	}
	return email, nil
}
