package models

import "time"

// Grant statuses as used by the dashboard.
const (
	StatusPotential = "potential"
	StatusDrafting  = "drafting"
	StatusSubmitted = "submitted"
	StatusSuccessful = "successful"
	StatusClosed    = "closed"
)

// GrantRecord is a single funding opportunity as tracked by the dashboard.
// DueDate is kept exactly as entered ("2026-03-15" or the literal "Ongoing");
// AmountString is unstructured free text ("$10,000 - $150,000").
type GrantRecord struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Funder       string                 `json:"funder"`
	Description  string                 `json:"description"`
	AmountString string                 `json:"amount_string"`
	DueDate      string                 `json:"due_date"`
	Status       string                 `json:"status"`
	Source       string                 `json:"source"` // manual, discovered, seed
	Assessment   *EligibilityAssessment `json:"assessment,omitempty"`
	AddedDate    time.Time              `json:"added_date"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// AddedAt returns the best-known time the grant entered the system,
// preferring added_date over created_at. Zero means unknown.
func (g GrantRecord) AddedAt() time.Time {
	if !g.AddedDate.IsZero() {
		return g.AddedDate
	}
	return g.CreatedAt
}

// AmountRange bounds the funding amounts the organisation pursues.
// All bounds are inclusive.
type AmountRange struct {
	Min          float64 `yaml:"min" json:"min"`
	Max          float64 `yaml:"max" json:"max"`
	PreferredMin float64 `yaml:"preferred_min" json:"preferred_min"`
}

// EligibilityProfile is the static configuration describing what a "good fit"
// grant looks like. Loaded once and treated as immutable for a scoring pass.
// RequiredTags is ordered: matched tags are reported in this order.
type EligibilityProfile struct {
	RequiredTags         []string    `yaml:"required_tags" json:"required_tags"`
	AmountRanges         AmountRange `yaml:"amount_ranges" json:"amount_ranges"`
	PreferredKeywords    []string    `yaml:"preferred_keywords" json:"preferred_keywords"`
	ExcludedKeywords     []string    `yaml:"excluded_keywords" json:"excluded_keywords"`
	LocationRequirements []string    `yaml:"location_requirements" json:"location_requirements"`
}

// Eligibility categories.
const (
	CategoryEligible            = "eligible"
	CategoryEligibleWithAuspice = "eligible_with_auspice"
	CategoryNotEligible         = "not_eligible"
)

// ScoreDetails carries the four component scores, each in [0,1].
type ScoreDetails struct {
	TagScore      float64 `json:"tagScore"`
	AmountScore   float64 `json:"amountScore"`
	KeywordScore  float64 `json:"keywordScore"`
	LocationScore float64 `json:"locationScore"`
}

// EligibilityAssessment is the output of one scoring pass. A re-assessment
// always produces a fresh value; assessments are never mutated in place.
type EligibilityAssessment struct {
	Category   string       `json:"category"`
	Confidence float64      `json:"confidence"`
	Tags       []string     `json:"tags"`
	Details    ScoreDetails `json:"details"`
	Reasoning  string       `json:"reasoning"`
}
