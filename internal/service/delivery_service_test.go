package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/internal/domain/mocks"
)

type deliveryMocks struct {
	newsletters *mocks.MockNewsletterRepository
	contacts    *mocks.MockContactRepository
	renderer    *mocks.MockEmailRenderer
	provider    *mocks.MockEmailProvider
}

func setupDeliveryTest(t *testing.T) (*DeliveryService, deliveryMocks) {
	ctrl := gomock.NewController(t)
	m := deliveryMocks{
		newsletters: mocks.NewMockNewsletterRepository(ctrl),
		contacts:    mocks.NewMockContactRepository(ctrl),
		renderer:    mocks.NewMockEmailRenderer(ctrl),
		provider:    mocks.NewMockEmailProvider(ctrl),
	}
	m.provider.EXPECT().Name().Return("brevo").AnyTimes()

	service := NewDeliveryService(DeliveryServiceConfig{
		NewsletterRepo: m.newsletters,
		ContactRepo:    m.contacts,
		Renderer:       m.renderer,
		Provider:       m.provider,
		Logger:         newMockLogger(ctrl),
		Concurrency:    3,
	})
	service.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return service, m
}

func generatedNewsletter() *domain.NewsletterWithCompany {
	nl := testNewsletterWithCompany()
	nl.IndustrySummary = "Summary"
	nl.Sections = []domain.NewsletterSection{
		{Title: "One", Content: "First"},
		{Title: "Two", Content: "Second"},
		{Title: "Three", Content: "Third"},
	}
	return nl
}

var renderedEmail = &domain.RenderedEmail{HTML: "<p>news</p>", Text: "news"}

func TestDeliveryService_SendPreview(t *testing.T) {
	t.Run("sends to the company and awaits approval", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.renderer.EXPECT().Render(gomock.Any(), domain.NewsletterEmailData{
			CompanyName:     "Acme",
			IndustrySummary: "Summary",
			Sections:        nl.Sections,
			Year:            2025,
		}).Return(renderedEmail, nil)
		m.provider.EXPECT().Send(gomock.Any(), domain.EmailMessage{
			To:      "owner@acme.test",
			ToName:  "Acme",
			Subject: "Newsletter Draft - Acme",
			HTML:    "<p>news</p>",
			Text:    "news",
		}).Return(nil)
		m.newsletters.EXPECT().UpdateStatus(gomock.Any(), nl.ID, domain.NewsletterStatusPendingApproval).Return(nil)

		require.NoError(t, service.SendPreview(context.Background(), nl.ID))
	})

	t.Run("incomplete content", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()
		nl.Sections = nl.Sections[:2]

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)

		err := service.SendPreview(context.Background(), nl.ID)
		assert.ErrorIs(t, err, domain.ErrContentIncomplete)
	})

	t.Run("provider failure keeps the status", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.provider.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("invalid sender"))

		err := service.SendPreview(context.Background(), nl.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sender")
	})

	t.Run("render failure", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("mjml: bad tag"))

		err := service.SendPreview(context.Background(), nl.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render newsletter")
	})
}

func contactsFor(companyID string, n int) []*domain.Contact {
	contacts := make([]*domain.Contact, n)
	for i := range contacts {
		contacts[i] = &domain.Contact{
			ID:        fmt.Sprintf("c-%d", i),
			CompanyID: companyID,
			Name:      fmt.Sprintf("Contact %d", i),
			Email:     fmt.Sprintf("c%d@example.com", i),
		}
	}
	return contacts
}

func TestDeliveryService_SendToContacts(t *testing.T) {
	sendAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("all sent", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(5, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.contacts.EXPECT().ListByCompany(gomock.Any(), nl.CompanyID).Return(contactsFor(nl.CompanyID, 5), nil)

		var mu sync.Mutex
		recipients := map[string]bool{}
		m.provider.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg domain.EmailMessage) error {
			assert.Equal(t, "Acme - Industry Newsletter", msg.Subject)
			mu.Lock()
			recipients[msg.To] = true
			mu.Unlock()
			return nil
		}).Times(5)

		expected := domain.DeliveryResult{SentAt: sendAt, SentCount: 5, FailedCount: 0, Status: domain.DeliveryStatusSuccess}
		m.newsletters.EXPECT().RecordDelivery(gomock.Any(), nl.ID, expected).Return(nil)

		result, err := service.SendToContacts(context.Background(), nl.ID)
		require.NoError(t, err)
		assert.Equal(t, &expected, result)
		assert.Len(t, recipients, 5)
	})

	t.Run("partial failure", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(4, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.contacts.EXPECT().ListByCompany(gomock.Any(), nl.CompanyID).Return(contactsFor(nl.CompanyID, 4), nil)
		m.provider.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg domain.EmailMessage) error {
			if msg.To == "c1@example.com" {
				return errors.New("mailbox full")
			}
			return nil
		}).Times(4)
		m.newsletters.EXPECT().RecordDelivery(gomock.Any(), nl.ID, gomock.Any()).Return(nil)

		result, err := service.SendToContacts(context.Background(), nl.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, result.SentCount)
		assert.Equal(t, 1, result.FailedCount)
		assert.Equal(t, domain.DeliveryStatusPartialFailure, result.Status)
	})

	t.Run("total failure", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(2, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.contacts.EXPECT().ListByCompany(gomock.Any(), nl.CompanyID).Return(contactsFor(nl.CompanyID, 2), nil)
		m.provider.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("suspended")).Times(2)
		m.newsletters.EXPECT().RecordDelivery(gomock.Any(), nl.ID, gomock.Any()).Return(nil)

		result, err := service.SendToContacts(context.Background(), nl.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryStatusFailure, result.Status)
	})

	t.Run("no contacts", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(0, nil)

		_, err := service.SendToContacts(context.Background(), nl.ID)
		assert.ErrorIs(t, err, domain.ErrNoRecipients)
	})

	t.Run("contacts removed after counting", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(2, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.contacts.EXPECT().ListByCompany(gomock.Any(), nl.CompanyID).Return([]*domain.Contact{}, nil)

		_, err := service.SendToContacts(context.Background(), nl.ID)
		assert.ErrorIs(t, err, domain.ErrNoRecipients)
	})

	t.Run("count failure", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(0, errors.New("conn reset"))

		_, err := service.SendToContacts(context.Background(), nl.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count contacts")
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		service.ratePerSecond = 1000
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(12, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.contacts.EXPECT().ListByCompany(gomock.Any(), nl.CompanyID).Return(contactsFor(nl.CompanyID, 12), nil)

		var mu sync.Mutex
		inFlight, peak := 0, 0
		m.provider.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.EmailMessage) error {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil
		}).Times(12)
		m.newsletters.EXPECT().RecordDelivery(gomock.Any(), nl.ID, gomock.Any()).Return(nil)

		result, err := service.SendToContacts(context.Background(), nl.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, result.SentCount)
		assert.LessOrEqual(t, peak, 3)
	})

	t.Run("record failure", func(t *testing.T) {
		service, m := setupDeliveryTest(t)
		nl := generatedNewsletter()

		m.newsletters.EXPECT().GetWithCompany(gomock.Any(), nl.ID).Return(nl, nil)
		m.contacts.EXPECT().CountByCompany(gomock.Any(), nl.CompanyID).Return(1, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedEmail, nil)
		m.contacts.EXPECT().ListByCompany(gomock.Any(), nl.CompanyID).Return(contactsFor(nl.CompanyID, 1), nil)
		m.provider.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		m.newsletters.EXPECT().RecordDelivery(gomock.Any(), nl.ID, gomock.Any()).Return(errors.New("conn reset"))

		_, err := service.SendToContacts(context.Background(), nl.ID)
		assert.Error(t, err)
	})
}

func TestNewDeliveryService_Defaults(t *testing.T) {
	service := NewDeliveryService(DeliveryServiceConfig{})
	assert.Equal(t, DefaultSendConcurrency, service.concurrency)
	assert.Equal(t, 10, DefaultSendConcurrency)
}
