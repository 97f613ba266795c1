package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripgems/internal/models/tour_models"
)

func interpreterFixture() (tour_models.VisitCandidateList, JobIndex) {
	b := NewItineraryBuilder()
	prefs := dayPrefs()
	locs := b.PrepareLocations([]tour_models.ScoredPlace{
		scored("r1", tour_models.CategoryRestaurant, 1),
		scored("p1", tour_models.CategoryPOI, 1),
		scored("a1", tour_models.CategoryAttraction, 1),
	}, prefs)
	_, index, _ := b.BuildOptimizationRequest(locs, prefs)
	return locs, index
}

func TestInterpret_MapsStepsAndClock(t *testing.T) {
	locs, index := interpreterFixture()
	resp := &OptimizationResponse{Routes: []OptimizationRoute{{
		Vehicle: 1,
		Steps: []OptimizationStep{
			{Type: "start", Arrival: 28800},
			{Type: "job", ID: 2, Arrival: 30000, Duration: 1200},
			{Type: "break", Arrival: 31000},
			{Type: "job", ID: 1, Arrival: 36000, Duration: 3000},
			{Type: "job", ID: 3, Arrival: 43200, Duration: 3600},
			{Type: "end", Arrival: 72000, Duration: 5000},
		},
	}}}

	out := NewSolutionInterpreter().Interpret(resp, locs, index)

	require.Len(t, out.Steps, 5)
	assert.Equal(t, tour_models.StepStart, out.Steps[0].Type)
	assert.Equal(t, 0, out.Steps[0].LocationIndex)
	assert.Equal(t, "08:00", out.Steps[0].ArrivalClock)
	assert.Equal(t, "Start Location", out.Steps[0].Name)

	assert.Equal(t, 2, out.Steps[1].LocationIndex)
	assert.Equal(t, "Place p1", out.Steps[1].Name)
	assert.Equal(t, tour_models.CategoryPOI, out.Steps[1].Category)

	assert.Equal(t, tour_models.StepEnd, out.Steps[4].Type)
	assert.Equal(t, 0, out.Steps[4].LocationIndex)
	assert.Equal(t, "20:00", out.Steps[4].ArrivalClock)

	assert.Equal(t, 3, out.VisitedCount)
	assert.Empty(t, out.Dropped)
	assert.Empty(t, out.Warnings)
}

func TestInterpret_ReportsDroppedStops(t *testing.T) {
	locs, index := interpreterFixture()
	resp := &OptimizationResponse{Routes: []OptimizationRoute{{
		Steps: []OptimizationStep{
			{Type: "start", Arrival: 28800},
			{Type: "job", ID: 1, Arrival: 30000},
			{Type: "end", Arrival: 40000},
		},
	}}}

	out := NewSolutionInterpreter().Interpret(resp, locs, index)

	assert.Equal(t, 1, out.VisitedCount)
	assert.Equal(t, []int{2, 3}, out.Dropped)
	require.Len(t, out.Warnings, 2)
	assert.Contains(t, out.Warnings[0], `"Place p1"`)
	assert.Contains(t, out.Warnings[1], `"Place a1"`)
}

func TestInterpret_UnknownJobNotCounted(t *testing.T) {
	locs, index := interpreterFixture()
	resp := &OptimizationResponse{Routes: []OptimizationRoute{{
		Steps: []OptimizationStep{
			{Type: "start", Arrival: 28800},
			{Type: "job", ID: 99, Arrival: 30000},
			{Type: "end", Arrival: 40000},
		},
	}}}

	out := NewSolutionInterpreter().Interpret(resp, locs, index)

	require.Len(t, out.Steps, 3)
	assert.Equal(t, 0, out.Steps[1].LocationIndex)
	assert.Equal(t, 0, out.VisitedCount)
	assert.Len(t, out.Dropped, 3)
}

func TestInterpret_NilResponse(t *testing.T) {
	locs, index := interpreterFixture()
	out := NewSolutionInterpreter().Interpret(nil, locs, index)
	assert.Empty(t, out.Steps)
	assert.Zero(t, out.VisitedCount)
}

func TestSummary(t *testing.T) {
	in := Interpretation{
		Steps: []tour_models.ItineraryStep{
			{Type: tour_models.StepStart, Name: "Start Location", ArrivalClock: "08:00"},
			{Type: tour_models.StepJob, Name: "Rijksmuseum", ArrivalClock: "08:20"},
			{Type: tour_models.StepEnd, Name: "Start Location", ArrivalClock: "10:00"},
		},
		VisitedCount: 1,
	}

	assert.Equal(t,
		"Optimized Itinerary:\nStart Location (Start Time: 08:00) -> Rijksmuseum (Arrival: 08:20) -> Start Location (End Time: 10:00)\nTotal number of locations visited: 1",
		Summary(in))
}
