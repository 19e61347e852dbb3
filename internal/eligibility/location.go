package eligibility

import "strings"

// ScoreLocation is binary: any eligible location mentioned in the text scores
// 1.0. A grant that names no location stays at a neutral 0.5 — absence of a
// location is not disqualifying.
func ScoreLocation(text string, locations []string) float64 {
	for _, location := range locations {
		if strings.Contains(text, strings.ToLower(location)) {
			return 1.0
		}
	}
	return 0.5
}
