package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_copy_generator.go -package mocks github.com/Notifuse/newsletter/internal/domain CopyGenerator
//go:generate mockgen -destination mocks/mock_image_generator.go -package mocks github.com/Notifuse/newsletter/internal/domain ImageGenerator

// WriterSystemPrompt frames every copy request
const WriterSystemPrompt = "You are a professional newsletter writer specializing in business content."

// ImagePromptSystemPrompt frames requests for image prompts
const ImagePromptSystemPrompt = "You are an expert at creating prompts for DALL-E 3 to generate professional business images. Create prompts that are specific, detailed, and result in high-quality, photorealistic business imagery. Focus on professional settings, modern aesthetics, and business-appropriate scenes."

// MaxImagePromptLength is the longest image prompt sent to the image API
const MaxImagePromptLength = 200

// ChatMessage is one turn of a chat completion
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// CompletionRequest is a provider-neutral text generation request. Zero
// Temperature and MaxTokens mean "use the configured default".
type CompletionRequest struct {
	SystemPrompt string
	Messages     []ChatMessage
	Temperature  float64
	MaxTokens    int
	// JSONOutput asks the provider for a JSON object response when it
	// supports it
	JSONOutput bool
}

// UserPrompt builds a single-turn request
func UserPrompt(system, prompt string) CompletionRequest {
	return CompletionRequest{
		SystemPrompt: system,
		Messages:     []ChatMessage{{Role: "user", Content: prompt}},
	}
}

// CopyGenerator produces newsletter text
type CopyGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ImageGenerator produces one image for a prompt and returns its URL
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
