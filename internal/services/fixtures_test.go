package services

import "tripgems/internal/models/tour_models"

func ptrFloat(f float64) *float64 { return &f }

func ptrInt(n int) *int { return &n }

func place(id string, cat tour_models.Category, polarity float64, reviews int) tour_models.PlaceRecord {
	return tour_models.PlaceRecord{
		ID:         id,
		Name:       "Place " + id,
		Category:   cat,
		Lat:        52.37,
		Lng:        4.89,
		Polarity:   ptrFloat(polarity),
		NumReviews: ptrInt(reviews),
	}
}

func scored(id string, cat tour_models.Category, score float64) tour_models.ScoredPlace {
	return tour_models.ScoredPlace{
		PlaceRecord:  place(id, cat, 8, 100),
		OverallScore: score,
	}
}

func scoredIDs(places []tour_models.ScoredPlace) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.ID
	}
	return out
}
