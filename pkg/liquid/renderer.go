package liquid

import (
	"fmt"
	"strings"

	"github.com/osteele/liquid"
)

// MaxTemplateSize bounds the templates accepted by Render
const MaxTemplateSize = 100 * 1024

// Renderer renders Liquid templates with the newsletter filters registered
type Renderer struct {
	engine *liquid.Engine
}

// NewRenderer creates a renderer. Registered filters:
//
//	paragraphs: splits text on newlines, dropping empty lines
//	truncate_chars: cuts a string to n runes
func NewRenderer() *Renderer {
	engine := liquid.NewEngine()
	engine.RegisterFilter("paragraphs", Paragraphs)
	engine.RegisterFilter("truncate_chars", func(s string, n int) string {
		runes := []rune(s)
		if n < 0 || len(runes) <= n {
			return s
		}
		return string(runes[:n])
	})

	return &Renderer{engine: engine}
}

// Render renders template with data
func (r *Renderer) Render(template string, data map[string]interface{}) (string, error) {
	if template == "" {
		return "", fmt.Errorf("template content is empty")
	}
	if len(template) > MaxTemplateSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(template), MaxTemplateSize)
	}

	rendered, err := r.engine.ParseAndRenderString(template, data)
	if err != nil {
		return "", fmt.Errorf("liquid rendering failed: %w", err)
	}
	return rendered, nil
}

// Paragraphs splits text into trimmed non-empty lines
func Paragraphs(text string) []string {
	paragraphs := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}
