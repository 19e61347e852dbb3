package eligibility

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// NormalizeText lowercases and replaces punctuation with spaces. Replacing
// rather than stripping keeps adjacent words from merging ("arts/culture"
// stays two matchable words).
func NormalizeText(text string) string {
	return nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")
}

// HTMLToText flattens HTML to plain text, collapsing whitespace. Grant
// descriptions arrive as sanitized HTML from the discovery scraper; scoring
// and email text bodies want the words, not the markup.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
