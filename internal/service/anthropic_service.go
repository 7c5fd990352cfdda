package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// AnthropicService writes newsletter copy with the Anthropic Messages API
type AnthropicService struct {
	client anthropic.Client
	cfg    config.LLMConfig
	logger logger.Logger
}

// NewAnthropicService creates a new AnthropicService. Extra request
// options are appended after the API key.
func NewAnthropicService(cfg config.LLMConfig, logger logger.Logger, opts ...option.RequestOption) *AnthropicService {
	options := append([]option.RequestOption{option.WithAPIKey(cfg.AnthropicAPIKey)}, opts...)

	return &AnthropicService{
		client: anthropic.NewClient(options...),
		cfg:    cfg,
		logger: logger,
	}
}

// Complete implements domain.CopyGenerator
func (s *AnthropicService) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AnthropicService", "Complete")
	defer span.End()

	if s.cfg.AnthropicAPIKey == "" {
		return "", fmt.Errorf("Anthropic API key is not configured")
	}

	messages := make([]anthropic.MessageParam, len(req.Messages))
	for i, msg := range req.Messages {
		if msg.Role == "assistant" {
			messages[i] = anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content))
		} else {
			messages[i] = anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content))
		}
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens == 0 {
		maxTokens = int64(s.cfg.MaxTokens)
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = s.cfg.Temperature
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(s.cfg.AnthropicModel),
		MaxTokens:   maxTokens,
		Messages:    messages,
		Temperature: anthropic.Float(temperature),
	}

	system := req.SystemPrompt
	if req.JSONOutput {
		system = strings.TrimSpace(system + "\nRespond with a single JSON object and nothing else.")
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	message, err := s.client.Messages.New(ctx, params)
	tracing.RecordGenerationLatency(ctx, "anthropic", "chat", time.Since(start))
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Anthropic request failed")
		tracing.MarkSpanError(ctx, err)
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("Anthropic returned no text content")
	}
	return text.String(), nil
}
