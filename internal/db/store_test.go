package db

import (
	"testing"

	"github.com/shadowgoose/grantpulse/internal/models"
)

func TestMarshalAssessment(t *testing.T) {
	if raw, err := marshalAssessment(nil); err != nil || raw != nil {
		t.Fatalf("nil assessment must marshal to nil, got %v / %v", raw, err)
	}

	raw, err := marshalAssessment(&models.EligibilityAssessment{
		Category:   models.CategoryEligible,
		Confidence: 0.9,
		Tags:       []string{"documentary"},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty JSON")
	}
}
