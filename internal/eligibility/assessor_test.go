package eligibility

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shadowgoose/grantpulse/internal/models"
)

func testProfile() models.EligibilityProfile {
	return models.EligibilityProfile{
		RequiredTags: []string{"documentary", "film", "screen", "first nations"},
		AmountRanges: models.AmountRange{Min: 5000, Max: 200000, PreferredMin: 20000},
		PreferredKeywords: []string{"storytelling", "production", "community", "culture"},
		ExcludedKeywords:  []string{"research only", "individuals only"},
		LocationRequirements: []string{"australia", "victoria"},
	}
}

func TestAssess_EligibleGrant(t *testing.T) {
	grant := models.GrantRecord{
		Name:         "Documentary Production Fund",
		Funder:       "Screen Australia",
		Description:  "Supporting screen storytelling and community culture projects across Australia",
		AmountString: "$20,000 - $100,000",
	}

	assessment := Assess(grant, testProfile())

	if assessment.Category != models.CategoryEligible {
		t.Fatalf("expected eligible, got %s (confidence %.3f, tags %v)", assessment.Category, assessment.Confidence, assessment.Tags)
	}
	if assessment.Confidence < 0.8 {
		t.Fatalf("eligible category requires confidence >= 0.8, got %.3f", assessment.Confidence)
	}
	if len(assessment.Tags) < 2 {
		t.Fatalf("eligible category requires at least 2 matched tags, got %v", assessment.Tags)
	}
	// documentary and screen, in profile order
	expected := []string{"documentary", "screen"}
	if !reflect.DeepEqual(assessment.Tags, expected) {
		t.Fatalf("expected tags %v in profile order, got %v", expected, assessment.Tags)
	}
	if !strings.Contains(assessment.Reasoning, "Strong match with 2 relevant tags") {
		t.Fatalf("unexpected reasoning: %s", assessment.Reasoning)
	}
	if !strings.Contains(assessment.Reasoning, "Location requirements met") {
		t.Fatalf("expected location sentence in reasoning: %s", assessment.Reasoning)
	}
}

func TestAssess_Idempotent(t *testing.T) {
	grant := models.GrantRecord{
		Name:         "First Nations Stories Fund",
		Funder:       "Creative Australia",
		Description:  "Documentary storytelling grants",
		AmountString: "$10,000 - $150,000",
	}
	profile := testProfile()

	first := Assess(grant, profile)
	second := Assess(grant, profile)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assessment not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAssess_EmptyGrantDegradesToNeutral(t *testing.T) {
	assessment := Assess(models.GrantRecord{}, testProfile())

	if assessment.Details.TagScore != 0 {
		t.Fatalf("expected tag score 0, got %.3f", assessment.Details.TagScore)
	}
	if assessment.Details.AmountScore != 0.5 {
		t.Fatalf("expected neutral amount score 0.5, got %.3f", assessment.Details.AmountScore)
	}
	if assessment.Details.KeywordScore != 0.5 {
		t.Fatalf("expected neutral keyword score 0.5, got %.3f", assessment.Details.KeywordScore)
	}
	if assessment.Details.LocationScore != 0.5 {
		t.Fatalf("expected neutral location score 0.5, got %.3f", assessment.Details.LocationScore)
	}
	if assessment.Category != models.CategoryNotEligible {
		t.Fatalf("expected not_eligible, got %s", assessment.Category)
	}
}

func TestAssess_ScoresStayWithinBounds(t *testing.T) {
	grants := []models.GrantRecord{
		{}, // everything absent
		{
			Name:        "Storytelling production community culture grant",
			Description: strings.Repeat("storytelling production community culture ", 10),
		},
		{
			Name:        "Research only individuals only",
			Description: strings.Repeat("research only individuals only ", 10),
		},
		{AmountString: "$999,999,999"},
	}

	for i, grant := range grants {
		a := Assess(grant, testProfile())
		scores := map[string]float64{
			"tagScore":      a.Details.TagScore,
			"amountScore":   a.Details.AmountScore,
			"keywordScore":  a.Details.KeywordScore,
			"locationScore": a.Details.LocationScore,
			"confidence":    a.Confidence,
		}
		for name, value := range scores {
			if value < 0 || value > 1 {
				t.Fatalf("grant %d: %s out of [0,1]: %f", i, name, value)
			}
		}
	}
}

func TestAssess_SpaceCollapsedTagVariant(t *testing.T) {
	grant := models.GrantRecord{
		Name:        "Firstnations storytelling initiative",
		Description: "Grants for firstnations creators",
	}

	assessment := Assess(grant, testProfile())

	found := false
	for _, tag := range assessment.Tags {
		if tag == "first nations" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected space-collapsed variant to match 'first nations', got tags %v", assessment.Tags)
	}
}

func TestAssess_ExcludedKeywordsLowerScore(t *testing.T) {
	base := models.GrantRecord{Name: "Documentary fund", Description: "Screen projects"}
	penalized := base
	penalized.Description = "Screen projects, research only"

	profile := testProfile()
	if Assess(penalized, profile).Details.KeywordScore >= Assess(base, profile).Details.KeywordScore {
		t.Fatal("expected excluded keyword to lower the keyword score")
	}
}

func TestAssess_HTMLDescriptionIsFlattened(t *testing.T) {
	grant := models.GrantRecord{
		Name:        "Production fund",
		Description: "<p>Supporting <strong>documentary</strong> and <em>screen</em> projects</p>",
	}

	assessment := Assess(grant, testProfile())
	if len(assessment.Tags) != 2 {
		t.Fatalf("expected tags to match through HTML markup, got %v", assessment.Tags)
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		confidence float64
		tagCount   int
		expected   string
	}{
		{0.85, 2, models.CategoryEligible},
		{0.8, 2, models.CategoryEligible},
		{0.85, 1, models.CategoryEligibleWithAuspice},
		{0.6, 1, models.CategoryEligibleWithAuspice},
		{0.79, 1, models.CategoryEligibleWithAuspice},
		{0.59, 1, models.CategoryNotEligible},
		{0.95, 0, models.CategoryNotEligible},
		{0.5, 3, models.CategoryNotEligible},
	}

	for _, tc := range cases {
		if got := Categorize(tc.confidence, tc.tagCount); got != tc.expected {
			t.Fatalf("Categorize(%.2f, %d): expected %s, got %s", tc.confidence, tc.tagCount, tc.expected, got)
		}
	}
}
