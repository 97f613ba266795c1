package tour_models

const (
	DefaultMinRestaurants = 2
	DefaultMaxRestaurants = 2
	DefaultMaxStops       = 10
)

// UserPreferences configures a single itinerary computation.
// Times are minutes since midnight.
type UserPreferences struct {
	City           string     `json:"city" binding:"required"`
	Categories     []Category `json:"categories" binding:"required,min=1"`
	StartLat       *float64   `json:"start_lat" binding:"required,latitude"`
	StartLng       *float64   `json:"start_lng" binding:"required,longitude"`
	StartTime      int        `json:"start_time"`
	EndTime        int        `json:"end_time" binding:"required"`
	TravelMode     string     `json:"mode_of_travel"`
	MinPolarity    float64    `json:"min_polarity"`
	MinNumReviews  int        `json:"min_num_reviews"`
	MinRestaurants *int       `json:"min_restaurants,omitempty"`
	MaxRestaurants *int       `json:"max_restaurants,omitempty"`
	Underground    bool       `json:"underground"`
	MaxStops       int        `json:"max_stops,omitempty"`
}

func (u UserPreferences) Policy() ScoringPolicy {
	if u.Underground {
		return PolicyUnderground
	}
	return PolicyStandard
}

// HasStart reports whether both start coordinates were given.
func (u UserPreferences) HasStart() bool {
	return u.StartLat != nil && u.StartLng != nil
}

// StartPoint returns the start coordinates, zero when unset.
func (u UserPreferences) StartPoint() (lat, lng float64) {
	if u.StartLat != nil {
		lat = *u.StartLat
	}
	if u.StartLng != nil {
		lng = *u.StartLng
	}
	return lat, lng
}

func (u UserPreferences) RestaurantBounds() (int, int) {
	minRest, maxRest := DefaultMinRestaurants, DefaultMaxRestaurants
	if u.MinRestaurants != nil {
		minRest = *u.MinRestaurants
	}
	if u.MaxRestaurants != nil {
		maxRest = *u.MaxRestaurants
	}
	return minRest, maxRest
}

func (u UserPreferences) StopLimit() int {
	if u.MaxStops <= 0 {
		return DefaultMaxStops
	}
	return u.MaxStops
}

func (u UserPreferences) WantsRestaurants() bool {
	for _, c := range u.Categories {
		if c.IsRestaurant() {
			return true
		}
	}
	return false
}

// VisitCandidate is one entry of the list sent to the optimizer.
// Index 0 of a VisitCandidateList is always the synthetic start.
type VisitCandidate struct {
	ScoredPlace
	VisitDuration int `json:"visit_duration"`
}

type VisitCandidateList []VisitCandidate

type StepType string

const (
	StepStart StepType = "start"
	StepJob   StepType = "job"
	StepEnd   StepType = "end"
)

type ItineraryStep struct {
	Type          StepType `json:"type"`
	LocationIndex int      `json:"location_index"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	Arrival       int      `json:"arrival"`
	ArrivalClock  string   `json:"arrival_clock"`
	Duration      int      `json:"duration"`
}
