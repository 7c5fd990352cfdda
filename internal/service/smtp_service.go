package service

import (
	"context"
	"fmt"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/mailer"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// MailerProvider adapts a pkg/mailer implementation (SMTP or console) to
// domain.EmailProvider
type MailerProvider struct {
	name   string
	mailer mailer.Mailer
	logger logger.Logger
}

// NewMailerProvider creates a new MailerProvider
func NewMailerProvider(name string, m mailer.Mailer, logger logger.Logger) *MailerProvider {
	return &MailerProvider{name: name, mailer: m, logger: logger}
}

// Name implements domain.EmailProvider
func (p *MailerProvider) Name() string {
	return p.name
}

// Send implements domain.EmailProvider
func (p *MailerProvider) Send(ctx context.Context, msg domain.EmailMessage) error {
	ctx, span := tracing.StartServiceSpan(ctx, "MailerProvider", "Send")
	defer span.End()

	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	err := p.mailer.Send(ctx, mailer.Message{
		To:      msg.To,
		ToName:  msg.ToName,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"provider": p.name,
			"to":       msg.To,
			"error":    err.Error(),
		}).Error("Failed to send email")
		tracing.MarkSpanError(ctx, err)
		return err
	}
	return nil
}
