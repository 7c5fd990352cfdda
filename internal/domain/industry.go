package domain

import (
	"context"
	"sort"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_industry_insight_repository.go -package mocks github.com/Notifuse/newsletter/internal/domain IndustryInsightRepository

// IndustryTemplate pre-fills the onboarding form for a common industry.
// Texts in brackets are hints for the user to customize.
type IndustryTemplate struct {
	Value                string `json:"value"`
	Label                string `json:"label"`
	Icon                 string `json:"icon"`
	TargetAudience       string `json:"target_audience"`
	AudienceDescription  string `json:"audience_description"`
	NewsletterObjectives string `json:"newsletter_objectives"`
	PrimaryCTA           string `json:"primary_cta"`
}

// IndustryOption is the short form used to populate a select input
type IndustryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var industryTemplates = map[string]IndustryTemplate{
	"technology": {
		Label:                "Technology & Software",
		Icon:                 "💻",
		TargetAudience:       "Tech-savvy professionals, IT decision-makers, and business leaders",
		AudienceDescription:  "Our target audience consists of professionals who value innovative solutions. They are typically aged 25-55, working in technology-related roles or making technology decisions for their organizations. [Customize with your specific target demographics and behaviors]",
		NewsletterObjectives: "Share industry insights, product updates, and tech trends. Establish thought leadership in the tech space. [Add your specific company goals and unique value propositions]",
		PrimaryCTA:           "Explore our latest solutions or schedule a demo. [Customize with your specific product/service offering]",
	},
	"healthcare": {
		Label:                "Healthcare & Medical",
		Icon:                 "🏥",
		TargetAudience:       "Healthcare professionals, medical administrators, and wellness enthusiasts",
		AudienceDescription:  "Our audience includes medical practitioners, healthcare administrators, and individuals interested in health and wellness. They value evidence-based information and professional development. [Add your specific target audience characteristics]",
		NewsletterObjectives: "Provide updates on medical innovations, industry best practices, and healthcare insights. [Customize with your organization's specific goals and expertise]",
		PrimaryCTA:           "Book a consultation or learn more about our services. [Modify based on your specific healthcare offerings]",
	},
	"education": {
		Label:                "Education & E-learning",
		Icon:                 "📚",
		TargetAudience:       "Educators, school administrators, and education technology professionals",
		AudienceDescription:  "We serve education professionals seeking innovative teaching methods and administrative solutions. This includes K-12 teachers, university faculty, and EdTech decision-makers. [Specify your target education segment and their needs]",
		NewsletterObjectives: "Share educational resources, industry updates, and teaching strategies. [Add your institution's specific objectives and unique educational approach]",
		PrimaryCTA:           "Discover our educational resources or sign up for a workshop. [Customize based on your specific educational offerings]",
	},
	"retail": {
		Label:                "Retail & E-commerce",
		Icon:                 "🛍️",
		TargetAudience:       "Retail business owners, store managers, and retail industry professionals",
		AudienceDescription:  "Our audience includes retail decision-makers looking to optimize their operations and stay competitive. They are interested in retail trends, technology, and customer experience. [Add your specific retail segment focus]",
		NewsletterObjectives: "Provide retail industry insights, trend analysis, and business strategies. [Include your company's specific retail expertise and value proposition]",
		PrimaryCTA:           "Explore our retail solutions or request a consultation. [Modify based on your specific retail products/services]",
	},
	"finance": {
		Label:                "Finance & Banking",
		Icon:                 "💰",
		TargetAudience:       "Financial professionals, investors, and business decision-makers",
		AudienceDescription:  "We target finance industry professionals seeking market insights and financial solutions. This includes investment managers, financial advisors, and corporate finance leaders. [Customize with your specific financial sector focus]",
		NewsletterObjectives: "Deliver financial market analysis, industry trends, and expert insights. [Add your organization's specific financial expertise and goals]",
		PrimaryCTA:           "Schedule a financial consultation or learn about our services. [Modify based on your specific financial offerings]",
	},
	"marketing": {
		Label:                "Marketing & Advertising",
		Icon:                 "📈",
		TargetAudience:       "Marketing managers, advertising professionals, brand strategists",
		AudienceDescription:  "Marketing professionals seeking to improve campaign performance and ROI. They focus on audience engagement, conversion optimization, and brand building. Key challenges include measuring ROI, adapting to digital trends, and standing out in competitive markets.",
		NewsletterObjectives: "Share marketing trends, provide campaign strategies, discuss digital innovation, and showcase successful marketing campaigns.",
		PrimaryCTA:           "Get Marketing Analysis",
	},
}

// GetIndustryTemplate returns the preset for value (case-insensitive)
func GetIndustryTemplate(value string) (IndustryTemplate, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	tpl, ok := industryTemplates[key]
	if !ok {
		return IndustryTemplate{}, false
	}
	tpl.Value = key
	return tpl, true
}

// ListIndustryOptions returns the presets sorted by value
func ListIndustryOptions() []IndustryOption {
	options := make([]IndustryOption, 0, len(industryTemplates))
	for value, tpl := range industryTemplates {
		options = append(options, IndustryOption{Value: value, Label: tpl.Label, Icon: tpl.Icon})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Value < options[j].Value })
	return options
}

// IndustryInsight is a set of LLM bullets about a company's industry, kept
// so several drafts can reuse them
type IndustryInsight struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Industry  string    `json:"industry"`
	Bullets   []string  `json:"bullets"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate performs validation on the insight fields
func (i *IndustryInsight) Validate() error {
	if i.CompanyID == "" {
		return NewValidationError("insight company_id is required")
	}
	if len(i.Bullets) == 0 {
		return NewValidationError("insight needs at least one bullet")
	}
	return nil
}

// ParseBullets extracts list items from LLM output, accepting "-", "*",
// "•" and "1." markers
func ParseBullets(raw string) []string {
	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stripped := strings.TrimLeft(line, "-*• ")
		if stripped == line {
			// numbered item
			if idx := strings.IndexAny(line, ".)"); idx > 0 && idx <= 3 && isDigits(line[:idx]) {
				stripped = strings.TrimSpace(line[idx+1:])
			} else {
				continue
			}
		}
		if stripped = strings.TrimSpace(stripped); stripped != "" {
			bullets = append(bullets, stripped)
		}
	}
	return bullets
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// IndustryInsightRepository is the persistence port for insights
type IndustryInsightRepository interface {
	Create(ctx context.Context, insight *IndustryInsight) error
}
