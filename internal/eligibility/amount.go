package eligibility

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shadowgoose/grantpulse/internal/models"
)

var digitRunPattern = regexp.MustCompile(`\d+`)

// ScoreAmount scores the overlap between the amounts mentioned in a free-text
// amount field and the profile's funding range. Thousands separators are
// stripped first so "$10,000" reads as 10000 and not as two runs.
//
// A grant with no parseable amount scores a neutral 0.5: an unspecified
// amount is not penalized. A range outside the profile's bounds still scores
// 0.3 rather than zero.
func ScoreAmount(amountString string, rng models.AmountRange) float64 {
	if amountString == "" {
		return 0.5
	}

	runs := digitRunPattern.FindAllString(strings.ReplaceAll(amountString, ",", ""), -1)
	if len(runs) == 0 {
		return 0.5
	}

	amountMin := 0.0
	amountMax := 0.0
	for i, run := range runs {
		value, err := strconv.ParseFloat(run, 64)
		if err != nil {
			continue
		}
		if i == 0 || value < amountMin {
			amountMin = value
		}
		if i == 0 || value > amountMax {
			amountMax = value
		}
	}

	if amountMax >= rng.Min && amountMin <= rng.Max {
		if amountMin >= rng.PreferredMin {
			return 1.0
		}
		return 0.8
	}

	return 0.3
}
