package services

import (
	"github.com/rs/zerolog/log"
	"tripgems/internal/models/tour_models"
)

// Weights of the two scoring policies.
const (
	polarityWeight           = 0.7
	standardReviewWeight     = 1.5
	undergroundInverseWeight = 0.3
)

type ScoringServiceInterface interface {
	ScorePlaces(records []tour_models.PlaceRecord, policy tour_models.ScoringPolicy) []tour_models.ScoredPlace
}

type ScoringService struct{}

func NewScoringService() ScoringServiceInterface {
	return &ScoringService{}
}

// FilterScorable drops records lacking polarity or review count, or
// carrying negative values for either.
func FilterScorable(records []tour_models.PlaceRecord) []tour_models.PlaceRecord {
	out := make([]tour_models.PlaceRecord, 0, len(records))
	for _, r := range records {
		if r.HasScoringFields() {
			out = append(out, r)
			continue
		}
		if r.HasNegativeMetrics() {
			log.Warn().
				Str("id", r.ID).
				Str("name", r.Name).
				Float64("polarity", r.PolarityValue()).
				Int("numReviews", r.ReviewCount()).
				Msg("skipping place with negative polarity or review count")
		}
	}
	return out
}

// NormalizeSeries min-max scales values into [0,1]. A series without
// range maps to all zeros.
func NormalizeSeries(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	span := maxVal - minVal
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - minVal) / span
	}
	return out
}

func OverallScore(policy tour_models.ScoringPolicy, normalizedPolarity, normalizedReviews float64) float64 {
	if policy == tour_models.PolicyUnderground {
		return polarityWeight*normalizedPolarity + undergroundInverseWeight*(1-normalizedReviews)
	}
	return polarityWeight*normalizedPolarity + standardReviewWeight*normalizedReviews
}

// ScorePlaces expects every record to carry polarity and review count;
// see FilterScorable.
func (s *ScoringService) ScorePlaces(records []tour_models.PlaceRecord, policy tour_models.ScoringPolicy) []tour_models.ScoredPlace {
	polarity := make([]float64, len(records))
	reviews := make([]float64, len(records))
	for i, r := range records {
		polarity[i] = r.PolarityValue()
		reviews[i] = float64(r.ReviewCount())
	}

	np := NormalizeSeries(polarity)
	nr := NormalizeSeries(reviews)

	out := make([]tour_models.ScoredPlace, len(records))
	for i, r := range records {
		out[i] = tour_models.ScoredPlace{
			PlaceRecord:        r,
			NormalizedPolarity: np[i],
			NormalizedReviews:  nr[i],
			OverallScore:       OverallScore(policy, np[i], nr[i]),
		}
	}
	return out
}
