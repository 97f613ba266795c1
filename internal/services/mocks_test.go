package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"tripgems/internal/models/db_models"
)

type mockRoutingClient struct {
	mock.Mock
}

func (m *mockRoutingClient) Optimize(ctx context.Context, req *OptimizationRequest) (*OptimizationResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*OptimizationResponse)
	return resp, args.Error(1)
}

func (m *mockRoutingClient) Directions(ctx context.Context, profile string, coords [][2]float64) ([][2]float64, error) {
	args := m.Called(ctx, profile, coords)
	line, _ := args.Get(0).([][2]float64)
	return line, args.Error(1)
}

type mockItineraryRepo struct {
	mock.Mock
}

func (m *mockItineraryRepo) Create(ctx context.Context, itinerary *db_models.Itinerary) (uuid.UUID, error) {
	args := m.Called(ctx, itinerary)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockItineraryRepo) GetByIDWithStops(ctx context.Context, id string) (*db_models.Itinerary, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*db_models.Itinerary)
	return row, args.Error(1)
}

type mockPlaceRepo struct {
	mock.Mock
}

func (m *mockPlaceRepo) ReplaceCityPlaces(ctx context.Context, city string, kind db_models.PlaceKind, rows []db_models.PlaceRow) error {
	return m.Called(ctx, city, kind, rows).Error(0)
}

func (m *mockPlaceRepo) ListCityPlaces(ctx context.Context, city string, kind db_models.PlaceKind) ([]db_models.PlaceRow, error) {
	args := m.Called(ctx, city, kind)
	rows, _ := args.Get(0).([]db_models.PlaceRow)
	return rows, args.Error(1)
}
