package response_models

import "tripgems/internal/models/tour_models"

type DroppedStop struct {
	LocationIndex int                  `json:"location_index"`
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Category      tour_models.Category `json:"category"`
	Lat           float64              `json:"lat"`
	Lng           float64              `json:"lng"`
}

type ItineraryResult struct {
	ID           string                         `json:"id"`
	City         string                         `json:"city"`
	Policy       tour_models.ScoringPolicy      `json:"policy"`
	TravelMode   string                         `json:"mode_of_travel"`
	Locations    tour_models.VisitCandidateList `json:"locations"`
	Steps        []tour_models.ItineraryStep    `json:"steps"`
	VisitedCount int                            `json:"visited_count"`
	Dropped      []DroppedStop                  `json:"dropped,omitempty"`
	Warnings     []string                       `json:"warnings,omitempty"`
	Summary      string                         `json:"summary"`
	// Route is a [lng,lat] polyline; empty when directions were unavailable.
	Route [][2]float64 `json:"route,omitempty"`
}
