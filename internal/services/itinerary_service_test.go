package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tripgems/internal/models/db_models"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/repositories"
	"tripgems/pkg/utils"
)

func newTestItineraryService(places []tour_models.PlaceRecord, routing RoutingClient, repo *mockItineraryRepo) ItineraryServiceInterface {
	return NewItineraryService(
		stubIngestion{places: places},
		NewScoringService(),
		NewSelectorService(),
		NewItineraryBuilder(),
		NewSolutionInterpreter(),
		routing,
		repo,
	)
}

func planPrefs() tour_models.UserPreferences {
	prefs := dayPrefs()
	prefs.Categories = []tour_models.Category{tour_models.CategoryPOI, tour_models.CategoryAttraction}
	prefs.MaxStops = 2
	return prefs
}

func TestPlanItinerary(t *testing.T) {
	places := []tour_models.PlaceRecord{
		place("p1", tour_models.CategoryPOI, 9, 400),
		place("a1", tour_models.CategoryAttraction, 8, 300),
		place("p2", tour_models.CategoryPOI, 2, 5),
	}
	routing := new(mockRoutingClient)
	routing.On("Optimize", mock.Anything, mock.MatchedBy(func(req *OptimizationRequest) bool {
		return len(req.Jobs) == 2 && req.Vehicles[0].Profile == "driving-car"
	})).Return(&OptimizationResponse{Routes: []OptimizationRoute{{Steps: []OptimizationStep{
		{Type: "start", Arrival: 28800},
		{Type: "job", ID: 1, Arrival: 29400, Duration: 600},
		{Type: "end", Arrival: 32000, Duration: 1200},
	}}}}, nil)
	routing.On("Directions", mock.Anything, "driving-car", mock.Anything).
		Return([][2]float64{{4.9041, 52.3676}, {4.89, 52.37}}, nil)

	id := uuid.New()
	repo := new(mockItineraryRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(row *db_models.Itinerary) bool {
		return row.City == "Amsterdam" && len(row.Stops) == 4 && row.Stops[3].Dropped
	})).Return(id, nil)

	res, err := newTestItineraryService(places, routing, repo).PlanItinerary(context.Background(), planPrefs())

	require.NoError(t, err)
	assert.Equal(t, id.String(), res.ID)
	assert.Len(t, res.Locations, 3)
	assert.Len(t, res.Steps, 3)
	assert.Equal(t, 1, res.VisitedCount)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, 2, res.Dropped[0].LocationIndex)
	assert.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Summary, "(Start Time: 08:00)")
	assert.Len(t, res.Route, 2)
	routing.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestPlanItinerary_NoCandidates(t *testing.T) {
	routing := new(mockRoutingClient)
	repo := new(mockItineraryRepo)

	_, err := newTestItineraryService(nil, routing, repo).PlanItinerary(context.Background(), planPrefs())

	assert.ErrorIs(t, err, utils.ErrNoCandidates)
	routing.AssertNotCalled(t, "Optimize", mock.Anything, mock.Anything)
}

func TestPlanItinerary_InvalidInput(t *testing.T) {
	svc := newTestItineraryService(nil, new(mockRoutingClient), new(mockItineraryRepo))

	prefs := planPrefs()
	prefs.City = " "
	_, err := svc.PlanItinerary(context.Background(), prefs)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	prefs = planPrefs()
	prefs.EndTime = prefs.StartTime
	_, err = svc.PlanItinerary(context.Background(), prefs)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestPlanItinerary_InfeasibleRoute(t *testing.T) {
	routing := new(mockRoutingClient)
	routing.On("Optimize", mock.Anything, mock.Anything).Return(nil, utils.ErrNoFeasibleRoute)

	places := []tour_models.PlaceRecord{place("p1", tour_models.CategoryPOI, 9, 400)}
	_, err := newTestItineraryService(places, routing, new(mockItineraryRepo)).PlanItinerary(context.Background(), planPrefs())

	assert.ErrorIs(t, err, utils.ErrNoFeasibleRoute)
}

func TestPlanItinerary_SurvivesDirectionsAndStorageFailures(t *testing.T) {
	routing := new(mockRoutingClient)
	routing.On("Optimize", mock.Anything, mock.Anything).Return(&OptimizationResponse{Routes: []OptimizationRoute{{Steps: []OptimizationStep{
		{Type: "start", Arrival: 28800},
		{Type: "job", ID: 1, Arrival: 29400},
		{Type: "end", Arrival: 32000},
	}}}}, nil)
	routing.On("Directions", mock.Anything, mock.Anything, mock.Anything).Return(nil, utils.ErrUpstream)

	repo := new(mockItineraryRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("connection refused"))

	places := []tour_models.PlaceRecord{place("p1", tour_models.CategoryPOI, 9, 400)}
	res, err := newTestItineraryService(places, routing, repo).PlanItinerary(context.Background(), planPrefs())

	require.NoError(t, err)
	assert.Empty(t, res.ID)
	assert.Empty(t, res.Route)
	assert.Equal(t, 1, res.VisitedCount)
}

func TestPlanItinerary_WithoutDatabaseReturnsNoID(t *testing.T) {
	routing := new(mockRoutingClient)
	routing.On("Optimize", mock.Anything, mock.Anything).Return(&OptimizationResponse{Routes: []OptimizationRoute{{Steps: []OptimizationStep{
		{Type: "start", Arrival: 28800},
		{Type: "job", ID: 1, Arrival: 29400},
		{Type: "end", Arrival: 32000},
	}}}}, nil)
	routing.On("Directions", mock.Anything, mock.Anything, mock.Anything).Return(nil, utils.ErrUpstream)

	svc := NewItineraryService(
		stubIngestion{places: []tour_models.PlaceRecord{place("p1", tour_models.CategoryPOI, 9, 400)}},
		NewScoringService(),
		NewSelectorService(),
		NewItineraryBuilder(),
		NewSolutionInterpreter(),
		routing,
		repositories.NewItineraryRepository(nil),
	)

	res, err := svc.PlanItinerary(context.Background(), planPrefs())

	require.NoError(t, err)
	assert.Empty(t, res.ID)
	assert.Equal(t, 1, res.VisitedCount)
}

func TestGetItinerary(t *testing.T) {
	id := uuid.New()
	row := &db_models.Itinerary{
		City:         "Rome",
		TravelMode:   "foot-walking",
		Policy:       "underground",
		VisitedCount: 1,
		Summary:      "Optimized Itinerary:",
		Stops: []db_models.ItineraryStop{
			{Position: 0, StepType: "start", Name: "Start Location", Category: "start", Arrival: 28800},
			{Position: 1, StepType: "job", LocationIndex: 1, Name: "Colosseum", Category: "attraction", Arrival: 30600},
			{Position: 2, StepType: "end", Name: "Start Location", Category: "start", Arrival: 36000},
			{Position: 3, StepType: "job", LocationIndex: 2, ExternalID: "77", Name: "Trevi", Category: "poi", Latitude: 41.9, Longitude: 12.48, Dropped: true},
		},
	}
	row.ID = id

	repo := new(mockItineraryRepo)
	repo.On("GetByIDWithStops", mock.Anything, id.String()).Return(row, nil)

	res, err := newTestItineraryService(nil, new(mockRoutingClient), repo).GetItinerary(context.Background(), id.String())

	require.NoError(t, err)
	assert.Equal(t, tour_models.PolicyUnderground, res.Policy)
	require.Len(t, res.Steps, 3)
	assert.Equal(t, "08:30", res.Steps[1].ArrivalClock)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "77", res.Dropped[0].ID)
	assert.Equal(t, 41.9, res.Dropped[0].Lat)
}

func TestGetItinerary_Errors(t *testing.T) {
	repo := new(mockItineraryRepo)
	missing := uuid.New().String()
	broken := uuid.New().String()
	repo.On("GetByIDWithStops", mock.Anything, missing).Return(nil, nil)
	repo.On("GetByIDWithStops", mock.Anything, broken).Return(nil, errors.New("boom"))

	svc := newTestItineraryService(nil, new(mockRoutingClient), repo)

	_, err := svc.GetItinerary(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.GetItinerary(context.Background(), missing)
	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)

	_, err = svc.GetItinerary(context.Background(), broken)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestRouteCoordinates(t *testing.T) {
	steps := []tour_models.ItineraryStep{
		{Lat: 1, Lng: 2},
		{Lat: 1, Lng: 2},
		{Lat: 3, Lng: 4},
		{Lat: 1, Lng: 2},
	}
	assert.Equal(t, [][2]float64{{2, 1}, {4, 3}, {2, 1}}, RouteCoordinates(steps))
}
