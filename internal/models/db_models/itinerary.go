package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Itinerary struct {
	BaseModel
	City         string
	TravelMode   string
	Policy       string
	StartLat     float64
	StartLng     float64
	StartTime    int
	EndTime      int
	VisitedCount int
	Summary      string
	Warnings     pq.StringArray `gorm:"type:text[]"`

	Stops []ItineraryStop `gorm:"foreignKey:ItineraryID"`
}

// ItineraryStop is one step of a stored itinerary. Dropped stops are kept
// with Dropped set so a stored plan reflects what the optimizer left out.
type ItineraryStop struct {
	BaseModel
	ItineraryID   uuid.UUID `gorm:"type:uuid;index"`
	Position      int
	StepType      string
	LocationIndex int
	ExternalID    string
	Name          string
	Category      string
	Latitude      float64
	Longitude     float64
	Arrival       int
	Dropped       bool
}
