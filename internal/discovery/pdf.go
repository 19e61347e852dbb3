package discovery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	rpdf "rsc.io/pdf"
)

var dateSnippetRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/20\d{2}\b`),
	regexp.MustCompile(`(?i)\b20\d{2}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s+20\d{2}\b`),
}

var snippetDateFormats = []string{
	"2/1/2006",
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

func extractPDFText(content []byte) (text string, err error) {
	// rsc.io/pdf panics on some malformed documents.
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("pdf parser panic: %v", recovered)
			text = ""
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		for _, fragment := range page.Content().Text {
			builder.WriteString(fragment.S)
			builder.WriteString(" ")
		}
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// DeadlineCandidatesFromText scans free text for date tokens and returns the
// parsed dates in ascending order, deduplicated.
func DeadlineCandidatesFromText(text string) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time

	for _, expr := range dateSnippetRegexes {
		for _, token := range expr.FindAllString(text, -1) {
			parsed, ok := parseSnippetDate(strings.TrimSpace(token))
			if !ok || seen[parsed] {
				continue
			}
			seen[parsed] = true
			dates = append(dates, parsed)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func parseSnippetDate(token string) (time.Time, bool) {
	for _, layout := range snippetDateFormats {
		if parsed, err := time.Parse(layout, token); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// deadlineFromPDF downloads a guideline PDF and returns the earliest future
// date found in it, formatted as an ISO date. Failures are reported as not
// found since guideline PDFs are a best-effort enrichment.
func deadlineFromPDF(ctx context.Context, pdfURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, 20*1024*1024))
	if err != nil {
		return "", false
	}

	text, err := extractPDFText(content)
	if err != nil {
		return "", false
	}

	now := time.Now()
	for _, candidate := range DeadlineCandidatesFromText(text) {
		if candidate.After(now) {
			return candidate.Format("2006-01-02"), true
		}
	}
	return "", false
}
