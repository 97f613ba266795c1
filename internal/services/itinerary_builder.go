package services

import (
	"fmt"

	"tripgems/internal/models/tour_models"
	"tripgems/pkg/utils"
)

// Visit durations in minutes per category.
var CategoryVisitDurations = map[tour_models.Category]int{
	tour_models.CategoryPOI:           30,
	tour_models.CategoryRestaurant:    60,
	tour_models.CategoryAttraction:    60,
	tour_models.CategoryAccommodation: 60,
}

const defaultVisitDuration = 30

// Every job and the vehicle share this skill so all jobs stay assignable.
const visitSkill = 1

func VisitDuration(category tour_models.Category) int {
	if d, ok := CategoryVisitDurations[tour_models.ParseCategory(string(category))]; ok {
		return d
	}
	return defaultVisitDuration
}

// OptimizationRequest mirrors the ORS /optimization payload.
type OptimizationRequest struct {
	Jobs     []OptimizationJob     `json:"jobs"`
	Vehicles []OptimizationVehicle `json:"vehicles"`
}

type OptimizationJob struct {
	ID          int        `json:"id"`
	Location    [2]float64 `json:"location"`
	Service     int        `json:"service"`
	TimeWindows [][2]int   `json:"time_windows"`
	Skills      []int      `json:"skills"`
}

type OptimizationVehicle struct {
	ID         int        `json:"id"`
	Profile    string     `json:"profile"`
	Start      [2]float64 `json:"start"`
	End        [2]float64 `json:"end"`
	TimeWindow [2]int     `json:"time_window"`
	Capacity   []int      `json:"capacity"`
	Skills     []int      `json:"skills"`
}

// JobIndex maps optimizer job ids back to positions in the candidate list.
type JobIndex map[int]int

type ItineraryBuilderInterface interface {
	PrepareLocations(selected []tour_models.ScoredPlace, prefs tour_models.UserPreferences) tour_models.VisitCandidateList
	BuildOptimizationRequest(locations tour_models.VisitCandidateList, prefs tour_models.UserPreferences) (*OptimizationRequest, JobIndex, error)
}

type ItineraryBuilder struct {
	defaultProfile string
}

func NewItineraryBuilder() ItineraryBuilderInterface {
	return &ItineraryBuilder{defaultProfile: "driving-car"}
}

func (b *ItineraryBuilder) PrepareLocations(selected []tour_models.ScoredPlace, prefs tour_models.UserPreferences) tour_models.VisitCandidateList {
	startLat, startLng := prefs.StartPoint()
	start := tour_models.VisitCandidate{
		ScoredPlace: tour_models.ScoredPlace{
			PlaceRecord: tour_models.PlaceRecord{
				ID:       "start",
				Name:     "Start Location",
				Category: tour_models.CategoryStart,
				Lat:      startLat,
				Lng:      startLng,
			},
		},
		VisitDuration: 0,
	}

	out := make(tour_models.VisitCandidateList, 0, len(selected)+1)
	out = append(out, start)
	for _, p := range selected {
		out = append(out, tour_models.VisitCandidate{
			ScoredPlace:   p,
			VisitDuration: VisitDuration(p.Category),
		})
	}
	return out
}

func (b *ItineraryBuilder) BuildOptimizationRequest(locations tour_models.VisitCandidateList, prefs tour_models.UserPreferences) (*OptimizationRequest, JobIndex, error) {
	if err := ValidateTimeWindow(prefs); err != nil {
		return nil, nil, err
	}
	if len(locations) < 2 {
		return nil, nil, utils.ErrNoCandidates
	}

	window := [2]int{utils.MinutesToSeconds(prefs.StartTime), utils.MinutesToSeconds(prefs.EndTime)}

	jobs := make([]OptimizationJob, 0, len(locations)-1)
	index := make(JobIndex, len(locations)-1)
	for idx := 1; idx < len(locations); idx++ {
		loc := locations[idx]
		jobs = append(jobs, OptimizationJob{
			ID:          idx,
			Location:    [2]float64{loc.Lng, loc.Lat},
			Service:     utils.MinutesToSeconds(loc.VisitDuration),
			TimeWindows: [][2]int{window},
			Skills:      []int{visitSkill},
		})
		index[idx] = idx
	}

	profile := prefs.TravelMode
	if profile == "" {
		profile = b.defaultProfile
	}
	startLat, startLng := prefs.StartPoint()
	home := [2]float64{startLng, startLat}

	req := &OptimizationRequest{
		Jobs: jobs,
		Vehicles: []OptimizationVehicle{{
			ID:         1,
			Profile:    profile,
			Start:      home,
			End:        home,
			TimeWindow: window,
			Capacity:   []int{4},
			Skills:     []int{visitSkill, 14},
		}},
	}
	return req, index, nil
}

// ValidateTimeWindow checks the start point and the day window, in minutes
// since midnight.
func ValidateTimeWindow(prefs tour_models.UserPreferences) error {
	if !prefs.HasStart() {
		return fmt.Errorf("%w: start_lat and start_lng are required", utils.ErrInvalidInput)
	}
	if prefs.StartTime < 0 || prefs.EndTime > 24*60 {
		return fmt.Errorf("%w: times must be within 0..1440 minutes", utils.ErrInvalidInput)
	}
	if prefs.StartTime >= prefs.EndTime {
		return fmt.Errorf("%w: start_time must be before end_time", utils.ErrInvalidInput)
	}
	return nil
}
