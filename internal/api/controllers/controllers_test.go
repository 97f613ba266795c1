package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tripgems/internal/models/db_models"
	"tripgems/internal/models/response_models"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/services"
	"tripgems/pkg/utils"
)

type mockItineraryService struct {
	mock.Mock
}

func (m *mockItineraryService) PlanItinerary(ctx context.Context, prefs tour_models.UserPreferences) (*response_models.ItineraryResult, error) {
	args := m.Called(ctx, prefs)
	res, _ := args.Get(0).(*response_models.ItineraryResult)
	return res, args.Error(1)
}

func (m *mockItineraryService) GetItinerary(ctx context.Context, id string) (*response_models.ItineraryResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*response_models.ItineraryResult)
	return res, args.Error(1)
}

type mockPlaceService struct {
	mock.Mock
}

func (m *mockPlaceService) ScoredPlaces(ctx context.Context, city string, categories []tour_models.Category, policy tour_models.ScoringPolicy, limit int) ([]tour_models.ScoredPlace, error) {
	args := m.Called(ctx, city, categories, policy, limit)
	out, _ := args.Get(0).([]tour_models.ScoredPlace)
	return out, args.Error(1)
}

func (m *mockPlaceService) HiddenGems(ctx context.Context, city string, categories []tour_models.Category, minReviews, maxReviews, limit int) ([]tour_models.PlaceRecord, error) {
	args := m.Called(ctx, city, categories, minReviews, maxReviews, limit)
	out, _ := args.Get(0).([]tour_models.PlaceRecord)
	return out, args.Error(1)
}

func (m *mockPlaceService) TouristTraps(ctx context.Context, city string, categories []tour_models.Category, criteria services.TrapCriteria) (services.TrapResult, error) {
	args := m.Called(ctx, city, categories, criteria)
	return args.Get(0).(services.TrapResult), args.Error(1)
}

func (m *mockPlaceService) StoredPlaces(ctx context.Context, city string, kind db_models.PlaceKind) ([]db_models.PlaceRow, error) {
	args := m.Called(ctx, city, kind)
	out, _ := args.Get(0).([]db_models.PlaceRow)
	return out, args.Error(1)
}

func newRouter(itinerary services.ItineraryServiceInterface, places services.PlaceServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ic := NewItineraryController(itinerary, services.NewMapService())
	pc := NewPlacesController(places, services.NewMapService())
	hc := NewHealthController()

	r.GET("/health", hc.Health)
	r.POST("/itineraries", ic.PlanItinerary)
	r.GET("/itineraries/:id", ic.GetItinerary)
	r.GET("/itineraries/:id/map", ic.GetItineraryMap)
	r.GET("/places/:city/scored", pc.GetScoredPlaces)
	r.GET("/places/:city/gems", pc.GetHiddenGems)
	r.GET("/places/:city/traps", pc.GetTouristTraps)
	r.GET("/places/:city/stored", pc.GetStoredPlaces)
	r.GET("/places/:city/map", pc.GetPlacesMap)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const planBody = `{"city":"Amsterdam","categories":["poi","restaurant"],"start_lat":52.37,"start_lng":4.89,"start_time":480,"end_time":1200}`

func TestHealth(t *testing.T) {
	w := do(newRouter(new(mockItineraryService), new(mockPlaceService)), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlanItinerary(t *testing.T) {
	svc := new(mockItineraryService)
	svc.On("PlanItinerary", mock.Anything, mock.MatchedBy(func(p tour_models.UserPreferences) bool {
		return p.City == "Amsterdam" && p.EndTime == 1200 && len(p.Categories) == 2
	})).Return(&response_models.ItineraryResult{City: "Amsterdam", VisitedCount: 3}, nil)

	w := do(newRouter(svc, new(mockPlaceService)), http.MethodPost, "/itineraries", planBody)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "success", resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["visited_count"])
	svc.AssertExpectations(t)
}

func TestPlanItinerary_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{utils.ErrNoFeasibleRoute, http.StatusUnprocessableEntity},
		{utils.ErrNoCandidates, http.StatusUnprocessableEntity},
		{utils.ErrInvalidInput, http.StatusBadRequest},
		{utils.ErrUpstream, http.StatusBadGateway},
	}
	for _, tc := range cases {
		svc := new(mockItineraryService)
		svc.On("PlanItinerary", mock.Anything, mock.Anything).Return(nil, tc.err)

		w := do(newRouter(svc, new(mockPlaceService)), http.MethodPost, "/itineraries", planBody)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestPlanItinerary_BadPayload(t *testing.T) {
	svc := new(mockItineraryService)

	w := do(newRouter(svc, new(mockPlaceService)), http.MethodPost, "/itineraries", `{"city":"Amsterdam"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "PlanItinerary", mock.Anything, mock.Anything)
}

func TestPlanItinerary_ZeroStartCoordinates(t *testing.T) {
	svc := new(mockItineraryService)
	svc.On("PlanItinerary", mock.Anything, mock.MatchedBy(func(p tour_models.UserPreferences) bool {
		lat, lng := p.StartPoint()
		return p.HasStart() && lat == 0 && lng == 0
	})).Return(&response_models.ItineraryResult{City: "Accra"}, nil)

	body := `{"city":"Accra","categories":["poi"],"start_lat":0,"start_lng":0,"start_time":480,"end_time":1200}`
	w := do(newRouter(svc, new(mockPlaceService)), http.MethodPost, "/itineraries", body)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPlanItinerary_StartCoordinatesValidated(t *testing.T) {
	bodies := []string{
		`{"city":"Accra","categories":["poi"],"start_lng":0,"end_time":1200}`,
		`{"city":"Accra","categories":["poi"],"start_lat":91,"start_lng":0,"end_time":1200}`,
		`{"city":"Accra","categories":["poi"],"start_lat":0,"start_lng":-181,"end_time":1200}`,
	}
	for _, body := range bodies {
		svc := new(mockItineraryService)

		w := do(newRouter(svc, new(mockPlaceService)), http.MethodPost, "/itineraries", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		svc.AssertNotCalled(t, "PlanItinerary", mock.Anything, mock.Anything)
	}
}

func TestGetItinerary_NotFound(t *testing.T) {
	svc := new(mockItineraryService)
	svc.On("GetItinerary", mock.Anything, "abc").Return(nil, utils.ErrItineraryNotFound)

	w := do(newRouter(svc, new(mockPlaceService)), http.MethodGet, "/itineraries/abc", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetItineraryMap(t *testing.T) {
	svc := new(mockItineraryService)
	svc.On("GetItinerary", mock.Anything, "abc").Return(&response_models.ItineraryResult{
		Steps: []tour_models.ItineraryStep{{Type: tour_models.StepStart, Lat: 1, Lng: 2}},
	}, nil)

	w := do(newRouter(svc, new(mockPlaceService)), http.MethodGet, "/itineraries/abc/map", "")

	require.Equal(t, http.StatusOK, w.Code)
	var fc response_models.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 1)
}

func TestGetScoredPlaces(t *testing.T) {
	places := new(mockPlaceService)
	places.On("ScoredPlaces", mock.Anything, "Rome", []tour_models.Category{tour_models.CategoryPOI}, tour_models.PolicyUnderground, 5).
		Return([]tour_models.ScoredPlace{{OverallScore: 1}}, nil)

	w := do(newRouter(new(mockItineraryService), places), http.MethodGet, "/places/Rome/scored?categories=poi&policy=underground&limit=5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "underground", data["policy"])
	assert.Equal(t, float64(1), data["count"])
	places.AssertExpectations(t)
}

func TestGetHiddenGems(t *testing.T) {
	places := new(mockPlaceService)
	places.On("HiddenGems", mock.Anything, "Rome", tour_models.AllCategories, 20, 500, 0).
		Return([]tour_models.PlaceRecord{{ID: "1"}, {ID: "2"}}, nil)

	w := do(newRouter(new(mockItineraryService), places), http.MethodGet, "/places/Rome/gems?min_reviews=20&max_reviews=500", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w).Data.(map[string]interface{})["count"])
}

func TestGetHiddenGems_InvalidQuery(t *testing.T) {
	w := do(newRouter(new(mockItineraryService), new(mockPlaceService)), http.MethodGet, "/places/Rome/gems?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTouristTraps_QueryOverrides(t *testing.T) {
	want := services.DefaultTrapCriteria()
	want.MinPolarity = 0
	want.MaxReviews = 2000

	places := new(mockPlaceService)
	places.On("TouristTraps", mock.Anything, "Rome", tour_models.AllCategories, want).
		Return(services.TrapResult{Warnings: []string{"w"}}, nil)

	w := do(newRouter(new(mockItineraryService), places), http.MethodGet, "/places/Rome/traps?min_polarity=0&max_reviews=2000", "")

	assert.Equal(t, http.StatusOK, w.Code)
	places.AssertExpectations(t)
}

func TestGetPlacesMap(t *testing.T) {
	places := new(mockPlaceService)
	places.On("HiddenGems", mock.Anything, "Rome", tour_models.AllCategories, 0, 0, 0).
		Return([]tour_models.PlaceRecord{{ID: "1", Category: tour_models.CategoryPOI}}, nil)

	r := newRouter(new(mockItineraryService), places)

	w := do(r, http.MethodGet, "/places/Rome/map", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fc response_models.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "blue", fc.Features[0].Properties["color"])

	w = do(r, http.MethodGet, "/places/Rome/map?layer=heat", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStoredPlaces(t *testing.T) {
	places := new(mockPlaceService)
	places.On("StoredPlaces", mock.Anything, "Rome", db_models.PlaceKindTrap).
		Return([]db_models.PlaceRow{{Name: "Colosseum"}}, nil)

	w := do(newRouter(new(mockItineraryService), places), http.MethodGet, "/places/Rome/stored?kind=TRAP", "")

	assert.Equal(t, http.StatusOK, w.Code)
	places.AssertExpectations(t)
}
