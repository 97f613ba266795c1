package response_models

import "tripgems/internal/models/tour_models"

type ScoredPlacesResponse struct {
	City   string                    `json:"city"`
	Policy tour_models.ScoringPolicy `json:"policy"`
	Count  int                       `json:"count"`
	Places []tour_models.ScoredPlace `json:"places"`
}

type PlacesResponse struct {
	City   string                    `json:"city"`
	Count  int                       `json:"count"`
	Places []tour_models.PlaceRecord `json:"places"`
}

type TrapsResponse struct {
	City     string                  `json:"city"`
	Count    int                     `json:"count"`
	Places   []tour_models.TrapPlace `json:"places"`
	Warnings []string                `json:"warnings,omitempty"`
}
