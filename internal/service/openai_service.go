package service

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// OpenAIService writes copy with chat completions and draws section
// images with the images API
type OpenAIService struct {
	client openai.Client
	cfg    config.LLMConfig
	logger logger.Logger
}

// NewOpenAIService creates a new OpenAIService. Requests go through
// httpClient; extra request options are appended last.
func NewOpenAIService(httpClient domain.HTTPClient, cfg config.LLMConfig, logger logger.Logger, opts ...option.RequestOption) *OpenAIService {
	options := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.OpenAIBaseURL != "" {
		options = append(options, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	options = append(options, opts...)

	return &OpenAIService{
		client: openai.NewClient(options...),
		cfg:    cfg,
		logger: logger,
	}
}

// Complete implements domain.CopyGenerator
func (s *OpenAIService) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "OpenAIService", "Complete")
	defer span.End()

	if s.cfg.OpenAIAPIKey == "" {
		return "", fmt.Errorf("OpenAI API key is not configured")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, msg := range req.Messages {
		if msg.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = s.cfg.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.cfg.MaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model:       s.cfg.OpenAIChatModel,
		Messages:    messages,
		Temperature: openai.Float(temperature),
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}
	if req.JSONOutput {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	start := time.Now()
	completion, err := s.client.Chat.Completions.New(ctx, params)
	tracing.RecordGenerationLatency(ctx, "openai", "chat", time.Since(start))
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("OpenAI chat completion failed")
		tracing.MarkSpanError(ctx, err)
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		err := fmt.Errorf("OpenAI returned no completion")
		tracing.MarkSpanError(ctx, err)
		return "", err
	}
	return completion.Choices[0].Message.Content, nil
}

// GenerateImage implements domain.ImageGenerator
func (s *OpenAIService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "OpenAIService", "GenerateImage")
	defer span.End()

	if s.cfg.OpenAIAPIKey == "" {
		return "", fmt.Errorf("OpenAI API key is not configured")
	}

	start := time.Now()
	images, err := s.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  s.cfg.OpenAIImageModel,
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	tracing.RecordGenerationLatency(ctx, "openai", "image", time.Since(start))
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("OpenAI image generation failed")
		tracing.MarkSpanError(ctx, err)
		return "", fmt.Errorf("openai image request failed: %w", err)
	}

	if len(images.Data) == 0 || images.Data[0].URL == "" {
		return "", fmt.Errorf("OpenAI returned no image URL")
	}
	return images.Data[0].URL, nil
}
