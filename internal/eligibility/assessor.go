package eligibility

import (
	"fmt"
	"strings"

	"github.com/shadowgoose/grantpulse/internal/models"
)

// Assess runs the four-factor eligibility scoring over a single grant:
// required tags, amount range, keyword alignment and location, each in [0,1],
// combined as an unweighted mean.
//
// Assess is a pure function of its inputs. Absent or malformed fields degrade
// to the documented neutral component scores, never errors, so identical
// inputs always yield an identical assessment.
func Assess(grant models.GrantRecord, profile models.EligibilityProfile) models.EligibilityAssessment {
	text := NormalizeText(grant.Name + " " + HTMLToText(grant.Description) + " " + grant.Funder)

	tags := ExtractTags(text, profile.RequiredTags)
	amountScore := ScoreAmount(grant.AmountString, profile.AmountRanges)
	keywordScore := ScoreKeywords(text, profile.PreferredKeywords, profile.ExcludedKeywords)
	locationScore := ScoreLocation(text, profile.LocationRequirements)

	confidence := (tags.Score + amountScore + keywordScore + locationScore) / 4

	return models.EligibilityAssessment{
		Category:   Categorize(confidence, tags.Count),
		Confidence: confidence,
		Tags:       tags.Found,
		Details: models.ScoreDetails{
			TagScore:      tags.Score,
			AmountScore:   amountScore,
			KeywordScore:  keywordScore,
			LocationScore: locationScore,
		},
		Reasoning: buildReasoning(tags, amountScore, keywordScore, locationScore),
	}
}

// Categorize derives the category from the aggregate confidence and the raw
// tag match count. The count threshold is deliberate: TagScore caps at 1.0
// from two matches, so the category check is on the count, not the score.
func Categorize(confidence float64, tagCount int) string {
	switch {
	case confidence >= 0.8 && tagCount >= 2:
		return models.CategoryEligible
	case confidence >= 0.6 && tagCount >= 1:
		return models.CategoryEligibleWithAuspice
	default:
		return models.CategoryNotEligible
	}
}

// buildReasoning assembles one advisory sentence per component. The text is
// presentation only and feeds no downstream decision.
func buildReasoning(tags TagMatch, amountScore, keywordScore, locationScore float64) string {
	var reasons []string

	switch {
	case tags.Count >= 2:
		reasons = append(reasons, fmt.Sprintf("Strong match with %d relevant tags: %s", tags.Count, strings.Join(tags.Found, ", ")))
	case tags.Count == 1:
		reasons = append(reasons, "Partial match with tag: "+tags.Found[0])
	default:
		reasons = append(reasons, "No relevant tags found")
	}

	switch {
	case amountScore >= 0.8:
		reasons = append(reasons, "Amount within preferred range")
	case amountScore >= 0.5:
		reasons = append(reasons, "Amount within acceptable range")
	default:
		reasons = append(reasons, "Amount may be outside preferred range")
	}

	if keywordScore >= 0.7 {
		reasons = append(reasons, "Strong keyword alignment")
	} else if keywordScore <= 0.3 {
		reasons = append(reasons, "Some keywords may not align with focus areas")
	}

	if locationScore == 1.0 {
		reasons = append(reasons, "Location requirements met")
	}

	return strings.Join(reasons, ". ")
}
