package eligibility

import "strings"

// ScoreKeywords starts from a neutral 0.5 and nudges per keyword hit:
// +0.1 for each preferred keyword found, -0.2 for each excluded keyword.
// The additive total is unbounded before the final clamp to [0,1].
func ScoreKeywords(text string, preferred, excluded []string) float64 {
	score := 0.5

	for _, keyword := range preferred {
		if strings.Contains(text, strings.ToLower(keyword)) {
			score += 0.1
		}
	}
	for _, keyword := range excluded {
		if strings.Contains(text, strings.ToLower(keyword)) {
			score -= 0.2
		}
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
