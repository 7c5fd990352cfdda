package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/liquid"
	"github.com/Notifuse/newsletter/pkg/mjml"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// NewsletterRenderer fills the MJML newsletter template with Liquid and
// compiles it to HTML plus a plain-text alternative
type NewsletterRenderer struct {
	liquid   *liquid.Renderer
	template string
}

// NewNewsletterRenderer creates a renderer for the built-in template
func NewNewsletterRenderer() *NewsletterRenderer {
	return &NewsletterRenderer{
		liquid:   liquid.NewRenderer(),
		template: mjml.NewsletterTemplate,
	}
}

// Render implements domain.EmailRenderer
func (r *NewsletterRenderer) Render(ctx context.Context, data domain.NewsletterEmailData) (*domain.RenderedEmail, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "NewsletterRenderer", "Render")
	defer span.End()

	year := data.Year
	if year == 0 {
		year = time.Now().Year()
	}

	sections := make([]map[string]interface{}, 0, len(data.Sections))
	for _, s := range data.Sections {
		sections = append(sections, map[string]interface{}{
			"title":     s.Title,
			"content":   s.Content,
			"image_url": s.ImageURL,
		})
	}

	document, err := r.liquid.Render(r.template, map[string]interface{}{
		"company_name":     data.CompanyName,
		"industry_summary": data.IndustrySummary,
		"sections":         sections,
		"year":             year,
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	html, err := mjml.Compile(ctx, document)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	text, err := mjml.HTMLToText(html)
	if err != nil {
		return nil, fmt.Errorf("failed to build text body: %w", err)
	}

	return &domain.RenderedEmail{HTML: html, Text: text}, nil
}
