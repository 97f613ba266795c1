package tour_models

import "strings"

type Category string

const (
	CategoryPOI           Category = "poi"
	CategoryRestaurant    Category = "restaurant"
	CategoryAttraction    Category = "attraction"
	CategoryAccommodation Category = "accommodation"
	CategoryStart         Category = "start"
)

// AllCategories is the set the places API knows about.
var AllCategories = []Category{CategoryPOI, CategoryRestaurant, CategoryAttraction, CategoryAccommodation}

// TrapCategories are the categories inspected for tourist traps.
var TrapCategories = []Category{CategoryPOI, CategoryRestaurant, CategoryAttraction}

// ParseCategory lower-cases and trims a raw category string.
func ParseCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

func (c Category) IsRestaurant() bool {
	return ParseCategory(string(c)) == CategoryRestaurant
}

// PlaceRecord is one place as returned by the places API.
// Polarity and NumReviews are nil when the API omitted them.
type PlaceRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Location   string   `json:"location,omitempty"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Polarity   *float64 `json:"polarity,omitempty"`
	NumReviews *int     `json:"numReviews,omitempty"`
}

// HasScoringFields reports whether the record can take part in scoring:
// polarity and review count are present and non-negative.
func (p PlaceRecord) HasScoringFields() bool {
	return p.Polarity != nil && p.NumReviews != nil && !p.HasNegativeMetrics()
}

// HasNegativeMetrics reports a polarity or review count below zero.
func (p PlaceRecord) HasNegativeMetrics() bool {
	return (p.Polarity != nil && *p.Polarity < 0) || (p.NumReviews != nil && *p.NumReviews < 0)
}

func (p PlaceRecord) PolarityValue() float64 {
	if p.Polarity == nil {
		return 0
	}
	return *p.Polarity
}

func (p PlaceRecord) ReviewCount() int {
	if p.NumReviews == nil {
		return 0
	}
	return *p.NumReviews
}

// Review is a single review of a place. Only Time is needed for
// seasonal analysis; the rest is carried for display.
type Review struct {
	Time     string  `json:"time"`
	Text     string  `json:"text,omitempty"`
	Language string  `json:"language,omitempty"`
	Polarity float64 `json:"polarity,omitempty"`
}

type ScoringPolicy string

const (
	PolicyStandard    ScoringPolicy = "standard"
	PolicyUnderground ScoringPolicy = "underground"
)

// ParsePolicy falls back to the standard policy for anything unknown.
func ParsePolicy(raw string) ScoringPolicy {
	if strings.EqualFold(strings.TrimSpace(raw), string(PolicyUnderground)) {
		return PolicyUnderground
	}
	return PolicyStandard
}

type ScoredPlace struct {
	PlaceRecord
	NormalizedPolarity float64 `json:"normalized_polarity"`
	NormalizedReviews  float64 `json:"normalized_reviews"`
	OverallScore       float64 `json:"overall_score"`
}

// TrapPlace is a place whose reviews cluster in a few months of the year.
type TrapPlace struct {
	PlaceRecord
	MonthlyReviews [12]int `json:"monthly_reviews"`
	ReviewVariance float64 `json:"review_variance"`
}
