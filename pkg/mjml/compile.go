package mjml

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	mjmlgo "github.com/Boostport/mjml-go"
	"github.com/PuerkitoBio/goquery"
)

// Compile turns an MJML document into email-safe HTML
func Compile(ctx context.Context, document string) (string, error) {
	if strings.TrimSpace(document) == "" {
		return "", fmt.Errorf("mjml document is empty")
	}

	html, err := mjmlgo.ToHTML(ctx, document)
	if err != nil {
		return "", fmt.Errorf("mjml compilation failed: %w", err)
	}
	return html, nil
}

// HTMLToText derives the plain-text alternative of an HTML email: one block
// per element, headings underlined with dashes, links written as
// "text (url)", images dropped.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("head, style, script, img").Remove()
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href != "" && text != "" && text != href {
			s.SetText(fmt.Sprintf("%s (%s)", text, href))
		}
	})
	doc.Find("br").ReplaceWithHtml("\n")

	var lines []string
	doc.Find("h1, h2, h3, p, li, td > div").Each(func(_ int, s *goquery.Selection) {
		// only leaf blocks, nested ones are visited separately
		if s.Find("h1, h2, h3, p, li, div").Length() > 0 {
			return
		}
		text := collapseSpaces(s.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3":
			text += "\n" + strings.Repeat("-", utf8.RuneCountInString(text))
		}
		lines = append(lines, text)
	})

	return strings.Join(dedupeAdjacent(lines), "\n\n"), nil
}

func collapseSpaces(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func dedupeAdjacent(lines []string) []string {
	out := lines[:0]
	for i, l := range lines {
		if i > 0 && l == lines[i-1] {
			continue
		}
		out = append(out, l)
	}
	return out
}
