package db_models

import "github.com/lib/pq"

type PlaceKind string

const (
	PlaceKindScored PlaceKind = "scored"
	PlaceKindGem    PlaceKind = "gem"
	PlaceKindTrap   PlaceKind = "trap"
)

// PlaceRow is the per-city tabular cache of fetched and derived place data.
type PlaceRow struct {
	BaseModel
	City       string    `gorm:"index:idx_place_city_kind;not null" json:"city"`
	Kind       PlaceKind `gorm:"index:idx_place_city_kind;not null" json:"kind"`
	ExternalID string    `gorm:"index" json:"external_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Location   string    `json:"location,omitempty"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
	Polarity   float64   `json:"polarity"`
	NumReviews int       `json:"numReviews"`

	Policy             string  `json:"policy,omitempty"`
	NormalizedPolarity float64 `json:"normalized_polarity,omitempty"`
	NormalizedReviews  float64 `json:"normalized_reviews,omitempty"`
	OverallScore       float64 `json:"overall_score,omitempty"`

	MonthlyReviews pq.Int64Array `gorm:"type:bigint[]" json:"monthly_reviews,omitempty"`
	ReviewVariance float64       `json:"review_variance,omitempty"`
}

func (PlaceRow) TableName() string {
	return "scored_places"
}
