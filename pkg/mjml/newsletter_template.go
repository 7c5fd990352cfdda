package mjml

// PreviewLength is the longest inbox preview text
const PreviewLength = 140

// NewsletterTemplate is the Liquid+MJML layout of a newsletter email.
// Expected data: company_name, industry_summary, sections (title, content,
// image_url) and year. The inbox preview is the summary cut to
// PreviewLength runes.
const NewsletterTemplate = `<mjml>
  <mj-head>
    <mj-title>{{ company_name | escape }} Newsletter</mj-title>
{%- if industry_summary != "" %}
    <mj-preview>{{ industry_summary | truncate_chars: 140 | escape }}</mj-preview>
{%- endif %}
    <mj-attributes>
      <mj-all font-family="Arial, Helvetica, sans-serif" />
      <mj-text font-size="15px" line-height="1.6" color="#333333" />
    </mj-attributes>
  </mj-head>
  <mj-body background-color="#f4f4f4" width="600px">
    <mj-section background-color="#1a365d" padding="24px 16px">
      <mj-column>
        <mj-text align="center" color="#ffffff" font-size="26px" font-weight="bold">{{ company_name | escape }}</mj-text>
        <mj-text align="center" color="#cbd5e0" font-size="14px">Industry Newsletter</mj-text>
      </mj-column>
    </mj-section>
{%- if industry_summary != "" %}
    <mj-section background-color="#ffffff" padding="16px">
      <mj-column>
        <mj-text font-size="20px" font-weight="bold" color="#1a365d"><h2 style="margin:0">Industry Insights</h2></mj-text>
{%- assign summary = industry_summary | paragraphs %}
{%- for p in summary %}
        <mj-text><p style="margin:0">{{ p | escape }}</p></mj-text>
{%- endfor %}
      </mj-column>
    </mj-section>
{%- endif %}
{%- for section in sections %}
    <mj-section background-color="#ffffff" padding="16px">
      <mj-column>
        <mj-text font-size="20px" font-weight="bold" color="#1a365d"><h2 style="margin:0">{{ section.title | escape }}</h2></mj-text>
{%- if section.image_url != "" %}
        <mj-image src="{{ section.image_url | escape }}" alt="{{ section.title | escape }}" border-radius="4px" />
{%- endif %}
{%- assign paragraphs = section.content | paragraphs %}
{%- for p in paragraphs %}
        <mj-text><p style="margin:0">{{ p | escape }}</p></mj-text>
{%- endfor %}
      </mj-column>
    </mj-section>
{%- endfor %}
    <mj-section padding="16px">
      <mj-column>
        <mj-text align="center" color="#718096" font-size="12px"><p style="margin:0">&copy; {{ year }} {{ company_name | escape }}. All rights reserved.</p></mj-text>
        <mj-text align="center" color="#718096" font-size="12px"><p style="margin:0">You received this email because you subscribed to our newsletter.</p></mj-text>
      </mj-column>
    </mj-section>
  </mj-body>
</mjml>`
