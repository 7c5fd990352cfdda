package service

import (
	"fmt"
	"time"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/mailer"
)

// NewEmailProvider returns the provider selected by EMAIL_PROVIDER
func NewEmailProvider(cfg config.EmailConfig, httpClient domain.HTTPClient, log logger.Logger) (domain.EmailProvider, error) {
	switch cfg.Provider {
	case "brevo":
		sender := domain.Sender{Email: cfg.SenderEmail, Name: cfg.SenderName}
		return NewBrevoService(httpClient, cfg.BrevoAPIKey, cfg.BrevoBaseURL, sender, log), nil
	case "ses":
		return NewSESService(cfg, log), nil
	case "smtp":
		m := mailer.NewSMTPMailer(&mailer.Config{
			SMTPHost:     cfg.SMTP.Host,
			SMTPPort:     cfg.SMTP.Port,
			SMTPUsername: cfg.SMTP.Username,
			SMTPPassword: cfg.SMTP.Password,
			UseTLS:       cfg.SMTP.UseTLS,
			FromEmail:    cfg.SenderEmail,
			FromName:     cfg.SenderName,
			Timeout:      30 * time.Second,
		})
		return NewMailerProvider("smtp", m, log), nil
	case "console":
		return NewMailerProvider("console", mailer.NewConsoleMailer(), log), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}

// NewCopyGenerator returns the text provider selected by LLM_PROVIDER.
// The OpenAI service is passed in because images always use it.
func NewCopyGenerator(cfg config.LLMConfig, openAI *OpenAIService, log logger.Logger) (domain.CopyGenerator, error) {
	switch cfg.Provider {
	case "openai":
		return openAI, nil
	case "anthropic":
		return NewAnthropicService(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
