package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// ErrInvalidAWSCredentials is returned when SES keys are missing
var ErrInvalidAWSCredentials = errors.New("invalid AWS credentials")

// SESService sends emails through Amazon SES
type SESService struct {
	cfg            config.EmailConfig
	logger         logger.Logger
	sessionFactory func(cfg config.EmailConfig) (*session.Session, error)
	clientFactory  func(sess *session.Session) domain.SESClient
}

// NewSESService creates a new SESService with the default AWS factories
func NewSESService(cfg config.EmailConfig, logger logger.Logger) *SESService {
	return NewSESServiceWithClients(cfg, logger, createSession, func(sess *session.Session) domain.SESClient {
		return ses.New(sess)
	})
}

// NewSESServiceWithClients creates a new SESService with custom factories for testing
func NewSESServiceWithClients(
	cfg config.EmailConfig,
	logger logger.Logger,
	sessionFactory func(cfg config.EmailConfig) (*session.Session, error),
	clientFactory func(sess *session.Session) domain.SESClient,
) *SESService {
	return &SESService{
		cfg:            cfg,
		logger:         logger,
		sessionFactory: sessionFactory,
		clientFactory:  clientFactory,
	}
}

func createSession(cfg config.EmailConfig) (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Region:      aws.String(cfg.SESRegion),
		Credentials: credentials.NewStaticCredentials(cfg.SESAccessKey, cfg.SESSecretKey, ""),
	})
}

// Name implements domain.EmailProvider
func (s *SESService) Name() string {
	return "ses"
}

// Send implements domain.EmailProvider
func (s *SESService) Send(ctx context.Context, msg domain.EmailMessage) error {
	ctx, span := tracing.StartServiceSpan(ctx, "SESService", "Send")
	defer span.End()

	if s.cfg.SESAccessKey == "" || s.cfg.SESSecretKey == "" {
		return ErrInvalidAWSCredentials
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	sess, err := s.sessionFactory(s.cfg)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to create AWS session: %v", err))
		return fmt.Errorf("failed to create AWS session: %w", err)
	}
	client := s.clientFactory(sess)

	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	body := &ses.Body{
		Html: &ses.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(msg.HTML),
		},
	}
	if msg.Text != "" {
		body.Text = &ses.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(msg.Text),
		}
	}

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Body: body,
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(msg.Subject),
			},
		},
		Source: aws.String(fmt.Sprintf("%s <%s>", s.cfg.SenderName, s.cfg.SenderEmail)),
	}

	if _, err := client.SendEmailWithContext(ctx, input); err != nil {
		tracing.MarkSpanError(ctx, err)
		if aerr, ok := err.(awserr.Error); ok {
			return fmt.Errorf("SES error: %s", aerr.Error())
		}
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
