package eligibility

import (
	"math"
	"strings"
)

// TagMatch is the result of matching a profile's required tags against a
// normalized grant text.
type TagMatch struct {
	Found []string
	Count int
	Score float64
}

// ExtractTags tests each required tag, case-insensitively, both as written
// and with internal spaces removed ("first nations" also matches
// "firstnations"). Matched tags are reported in profile order.
//
// Two matched tags already score the full 1.0; more tags raise the category
// threshold check but not the score.
func ExtractTags(text string, requiredTags []string) TagMatch {
	match := TagMatch{Found: make([]string, 0, len(requiredTags))}

	for _, tag := range requiredTags {
		lower := strings.ToLower(tag)
		if strings.Contains(text, lower) || strings.Contains(text, strings.ReplaceAll(lower, " ", "")) {
			match.Found = append(match.Found, tag)
			match.Count++
		}
	}

	match.Score = math.Min(float64(match.Count)/2, 1)
	return match
}
