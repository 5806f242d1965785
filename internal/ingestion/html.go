package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches page chrome that never belongs to a resume or posting
const noiseSelector = "nav, footer, header, script, style, noscript, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// blockSelector matches elements that end a line of text
const blockSelector = "p, div, section, article, li, tr, h1, h2, h3, h4, h5, h6, dt, dd, blockquote, pre"

// ContentSelectors returns the selectors tried, in order, to locate the main
// content of a page
func ContentSelectors() []string {
	return []string{
		".resume",
		"#resume",
		".job-description",
		"#job-description",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// ExtractTextFromHTML returns the readable text of an HTML document. List
// items become "- " bullets and block elements end a line, so the result
// segments the same way a plain-text resume does.
func ExtractTextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find(blockSelector).AfterHtml("\n")

	var main *goquery.Selection
	for _, selector := range ContentSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return cleanWhitespace(main.Text()), nil
}

// cleanWhitespace trims every line, collapses inner runs of whitespace and
// drops empty lines
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
