package fetcher

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements end a line of text when converted.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, tr, td, th, section, article, " +
	"blockquote, header, footer, dt, dd, figcaption, pre"

// HTMLToText converts an HTML document or fragment to plain text. Scripts,
// styles and other non-content nodes are dropped and block elements become
// line breaks.
func HTMLToText(htmlStr string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, svg, iframe, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return normalizeText(doc.Text()), nil
}

// normalizeText collapses runs of spaces within lines and drops blank lines.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
