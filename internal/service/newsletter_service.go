package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

// NewsletterService reads newsletters and writes their content with the
// configured copy and image generators
type NewsletterService struct {
	newsletterRepo domain.NewsletterRepository
	companyRepo    domain.CompanyRepository
	insightRepo    domain.IndustryInsightRepository
	copy           domain.CopyGenerator
	images         domain.ImageGenerator
	logger         logger.Logger
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(
	newsletterRepo domain.NewsletterRepository,
	companyRepo domain.CompanyRepository,
	insightRepo domain.IndustryInsightRepository,
	copyGenerator domain.CopyGenerator,
	images domain.ImageGenerator,
	logger logger.Logger,
) *NewsletterService {
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		companyRepo:    companyRepo,
		insightRepo:    insightRepo,
		copy:           copyGenerator,
		images:         images,
		logger:         logger,
	}
}

var _ domain.NewsletterService = (*NewsletterService)(nil)

// Get implements domain.NewsletterService
func (s *NewsletterService) Get(ctx context.Context, id string) (*domain.NewsletterWithCompany, error) {
	if id == "" {
		return nil, domain.NewValidationError("Newsletter ID is required")
	}
	return tracing.TraceMethodWithResult(ctx, "NewsletterService", "Get",
		func(ctx context.Context) (*domain.NewsletterWithCompany, error) {
			return s.newsletterRepo.GetWithCompany(ctx, id)
		})
}

// Latest implements domain.NewsletterService
func (s *NewsletterService) Latest(ctx context.Context) (*domain.Newsletter, error) {
	return tracing.TraceMethodWithResult(ctx, "NewsletterService", "Latest", s.newsletterRepo.GetLatest)
}

// GenerateContent implements domain.NewsletterService
func (s *NewsletterService) GenerateContent(ctx context.Context, newsletterID string) (result *domain.GeneratedContent, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "NewsletterService", "GenerateContent")
	defer func() { tracing.EndSpan(span, err) }()

	if newsletterID == "" {
		return nil, domain.NewValidationError("Newsletter ID is required")
	}

	newsletter, err := s.newsletterRepo.GetWithCompany(ctx, newsletterID)
	if err != nil {
		return nil, err
	}
	company := newsletter.Company
	log := s.logger.WithFields(map[string]interface{}{
		"newsletter_id": newsletterID,
		"company_id":    company.ID,
	})

	if err := s.newsletterRepo.UpdateStatus(ctx, newsletterID, domain.NewsletterStatusGenerating); err != nil {
		return nil, fmt.Errorf("failed to update newsletter status: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		// the request context may be gone; the rollback still has to land
		restoreCtx := context.WithoutCancel(ctx)
		if restoreErr := s.newsletterRepo.UpdateStatus(restoreCtx, newsletterID, domain.NewsletterStatusDraft); restoreErr != nil {
			log.WithField("error", restoreErr.Error()).Error("Failed to restore newsletter status")
		}
	}()

	summary, err := s.copy.Complete(ctx, domain.UserPrompt(domain.WriterSystemPrompt, summaryPrompt(company)))
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to generate industry summary")
		return nil, fmt.Errorf("failed to generate industry summary: %w", err)
	}
	summary = strings.TrimSpace(summary)

	sections := make([]domain.NewsletterSection, domain.SectionCount)
	g, gctx := errgroup.WithContext(ctx)
	for i, topic := range domain.SectionTopics {
		g.Go(func() error {
			section, err := s.generateSection(gctx, log, company, topic)
			if err != nil {
				return err
			}
			sections[i] = section
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithField("error", err.Error()).Error("Failed to generate newsletter sections")
		return nil, fmt.Errorf("failed to generate sections: %w", err)
	}

	if err := s.newsletterRepo.UpdateContent(ctx, newsletterID, summary, sections, domain.NewsletterStatusDraft); err != nil {
		log.WithField("error", err.Error()).Error("Failed to store newsletter content")
		return nil, fmt.Errorf("failed to update newsletter: %w", err)
	}

	log.Info("Newsletter content generated")

	return &domain.GeneratedContent{
		IndustrySummary: summary,
		Sections:        sections,
	}, nil
}

// generateSection writes one section and tries to illustrate it. Image
// failures leave ImageURL empty.
func (s *NewsletterService) generateSection(ctx context.Context, log logger.Logger, company *domain.Company, topic string) (domain.NewsletterSection, error) {
	raw, err := s.copy.Complete(ctx, domain.UserPrompt(domain.WriterSystemPrompt, sectionPrompt(company, topic)))
	if err != nil {
		return domain.NewsletterSection{}, err
	}
	section := domain.ParseSection(raw)

	imagePrompt, err := s.copy.Complete(ctx, domain.UserPrompt(domain.ImagePromptSystemPrompt, imagePromptRequest(company, section.Title)))
	if err != nil {
		log.WithFields(map[string]interface{}{
			"section": section.Title,
			"error":   err.Error(),
		}).Warn("Failed to generate image prompt")
		return section, nil
	}
	section.ImagePrompt = truncateRunes(strings.Trim(strings.TrimSpace(imagePrompt), `"`), domain.MaxImagePromptLength)

	url, err := s.images.GenerateImage(ctx, section.ImagePrompt)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"section": section.Title,
			"error":   err.Error(),
		}).Warn("Failed to generate section image")
		return section, nil
	}
	section.ImageURL = url

	return section, nil
}

// CreateDraftFromInsights implements domain.NewsletterService
func (s *NewsletterService) CreateDraftFromInsights(ctx context.Context, companyID string) (draft *domain.InsightDraft, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "NewsletterService", "CreateDraftFromInsights")
	defer func() { tracing.EndSpan(span, err) }()

	if companyID == "" {
		return nil, domain.NewValidationError("Company ID is required")
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	log := s.logger.WithField("company_id", companyID)

	raw, err := s.copy.Complete(ctx, domain.UserPrompt("", insightsPrompt(company)))
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to generate industry insights")
		return nil, fmt.Errorf("failed to generate industry insights: %w", err)
	}

	bullets := domain.ParseBullets(raw)
	if len(bullets) == 0 && strings.TrimSpace(raw) != "" {
		bullets = []string{strings.TrimSpace(raw)}
	}
	insight := &domain.IndustryInsight{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Industry:  company.Industry,
		Bullets:   bullets,
	}
	if err := insight.Validate(); err != nil {
		return nil, fmt.Errorf("failed to generate industry insights: %w", err)
	}
	if err := s.insightRepo.Create(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to store industry insights: %w", err)
	}

	newsletter := domain.NewDraftNewsletter(uuid.New().String(), company)
	newsletter.IndustryInsightID = insight.ID
	if err := s.newsletterRepo.Create(ctx, newsletter); err != nil {
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}

	req := domain.UserPrompt("", draftSectionsPrompt(company, bullets))
	req.JSONOutput = true
	raw, err = s.copy.Complete(ctx, req)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to generate draft sections")
		return nil, fmt.Errorf("failed to generate newsletter sections: %w", err)
	}

	sections, err := parseDraftSections(raw)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to parse draft sections")
		return nil, err
	}

	if err := s.newsletterRepo.UpdateContent(ctx, newsletter.ID, "", sections, domain.NewsletterStatusDraft); err != nil {
		return nil, fmt.Errorf("failed to update newsletter: %w", err)
	}
	newsletter.Sections = sections

	return &domain.InsightDraft{Newsletter: newsletter, Insight: insight}, nil
}

// parseDraftSections reads {"sections":[{heading, body, imagePrompt}]},
// tolerating a markdown code fence around the JSON. Exactly SectionCount
// sections with a body are required so the draft can be previewed and sent;
// extra ones are dropped.
func parseDraftSections(raw string) ([]domain.NewsletterSection, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("failed to generate newsletter sections: response is not JSON")
	}

	var sections []domain.NewsletterSection
	gjson.Get(raw, "sections").ForEach(func(_, value gjson.Result) bool {
		sections = append(sections, domain.NewsletterSection{
			Title:       strings.TrimSpace(value.Get("heading").String()),
			Content:     strings.TrimSpace(value.Get("body").String()),
			ImagePrompt: truncateRunes(strings.TrimSpace(value.Get("imagePrompt").String()), domain.MaxImagePromptLength),
		})
		return len(sections) < domain.SectionCount
	})

	if len(sections) < domain.SectionCount {
		return nil, fmt.Errorf("failed to generate newsletter sections: expected %d sections, got %d", domain.SectionCount, len(sections))
	}
	for i, section := range sections {
		if section.Content == "" {
			return nil, fmt.Errorf("failed to generate newsletter sections: section %d has no body", i+1)
		}
	}
	return sections, nil
}

func summaryPrompt(c *domain.Company) string {
	audience := c.AudienceDescription
	if strings.TrimSpace(audience) == "" {
		audience = "Business professionals"
	}
	return fmt.Sprintf("Write a brief summary about the %s industry, focusing on trends and opportunities relevant to %s. Context: %s",
		c.Industry, c.TargetAudienceOrDefault(), audience)
}

func sectionPrompt(c *domain.Company, topic string) string {
	return fmt.Sprintf("%s for %s, a %s company targeting %s. Make it engaging and actionable. Include a title for this section.",
		topic, c.CompanyName, c.Industry, c.TargetAudienceOrDefault())
}

func imagePromptRequest(c *domain.Company, title string) string {
	return fmt.Sprintf("Create a DALL-E 3 prompt for a professional image that represents: %q for a %s company targeting %s. "+
		"The image should be photorealistic, modern, and business-appropriate. "+
		"Make it specific and detailed but keep it under %d characters.",
		title, c.Industry, c.TargetAudienceOrDefault(), domain.MaxImagePromptLength)
}

func insightsPrompt(c *domain.Company) string {
	return fmt.Sprintf("You are a domain expert in %s.\n"+
		"Please provide a concise summary of 3 to 5 current trends, statistics, or insights that are relevant to a company named %s.\n"+
		"Return the answer in bullet form.", c.Industry, c.CompanyName)
}

func draftSectionsPrompt(c *domain.Company, bullets []string) string {
	var insights strings.Builder
	for _, b := range bullets {
		insights.WriteString("- ")
		insights.WriteString(b)
		insights.WriteString("\n")
	}

	return fmt.Sprintf(`You are a newsletter generator. Using the following data:

1. Company Information:
   - Company Name: %[1]s
   - Industry: %[2]s
   - Target Audience: %[3]s

2. Industry Info:
%[4]s
Generate a 3-section newsletter.
- Each section should have a heading and a short paragraph (3-4 sentences).
- Make it relevant to %[1]s.
- Make sure to incorporate references to the %[2]s trends (provided above).
- Include an "imagePrompt" describing the ideal visual for each section.
- Return the entire answer as JSON exactly like:
{"sections":[{"heading":"...","body":"...","imagePrompt":"..."},{"heading":"...","body":"...","imagePrompt":"..."},{"heading":"...","body":"...","imagePrompt":"..."}]}`,
		c.CompanyName, c.Industry, c.TargetAudienceOrDefault(), insights.String())
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
