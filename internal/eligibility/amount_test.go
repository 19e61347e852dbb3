package eligibility

import (
	"testing"

	"github.com/shadowgoose/grantpulse/internal/models"
)

var testRange = models.AmountRange{Min: 5000, Max: 200000, PreferredMin: 20000}

func TestScoreAmount_OverlapBelowPreferredMin(t *testing.T) {
	// 10000 < preferred_min 20000, so overlap scores 0.8 rather than 1.0
	if got := ScoreAmount("$10,000 - $150,000", testRange); got != 0.8 {
		t.Fatalf("expected 0.8, got %f", got)
	}
}

func TestScoreAmount_PreferredRange(t *testing.T) {
	if got := ScoreAmount("$25,000 to $80,000", testRange); got != 1.0 {
		t.Fatalf("expected 1.0, got %f", got)
	}
}

func TestScoreAmount_NoNumbersIsNeutral(t *testing.T) {
	if got := ScoreAmount("Contact for details", testRange); got != 0.5 {
		t.Fatalf("expected 0.5, got %f", got)
	}
	if got := ScoreAmount("", testRange); got != 0.5 {
		t.Fatalf("expected 0.5 for empty string, got %f", got)
	}
}

func TestScoreAmount_NoOverlap(t *testing.T) {
	if got := ScoreAmount("$500", testRange); got != 0.3 {
		t.Fatalf("expected 0.3 for amount below range, got %f", got)
	}
	if got := ScoreAmount("Up to $1,000,000", testRange); got != 0.3 {
		t.Fatalf("expected 0.3 for amount above range, got %f", got)
	}
}

func TestScoreAmount_SingleAmountInsideRange(t *testing.T) {
	if got := ScoreAmount("AUD 15000", testRange); got != 0.8 {
		t.Fatalf("expected 0.8, got %f", got)
	}
}
