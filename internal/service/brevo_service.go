package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// BrevoService sends transactional emails through the Brevo v3 API
type BrevoService struct {
	httpClient domain.HTTPClient
	apiKey     string
	baseURL    string
	sender     domain.Sender
	logger     logger.Logger
}

// NewBrevoService creates a new BrevoService
func NewBrevoService(httpClient domain.HTTPClient, apiKey, baseURL string, sender domain.Sender, logger logger.Logger) *BrevoService {
	return &BrevoService{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
		sender:     sender,
		logger:     logger,
	}
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoEmailRequest struct {
	Sender      domain.Sender    `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
	TextContent string           `json:"textContent,omitempty"`
}

// Name implements domain.EmailProvider
func (s *BrevoService) Name() string {
	return "brevo"
}

// Send implements domain.EmailProvider
func (s *BrevoService) Send(ctx context.Context, msg domain.EmailMessage) error {
	ctx, span := tracing.StartServiceSpan(ctx, "BrevoService", "Send")
	defer span.End()

	if s.apiKey == "" {
		return fmt.Errorf("Brevo API key is not configured")
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	payload := brevoEmailRequest{
		Sender:      s.sender,
		To:          []brevoRecipient{{Email: msg.To, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/smtp/email", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to execute request: %v", err))
		tracing.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		message := gjson.GetBytes(body, "message").String()
		if message == "" {
			message = string(body)
		}
		s.logger.Error(fmt.Sprintf("Brevo API returned non-OK status code %d: %s", resp.StatusCode, message))
		err := fmt.Errorf("API returned non-OK status code %d: %s", resp.StatusCode, message)
		tracing.MarkSpanError(ctx, err)
		return err
	}

	return nil
}
