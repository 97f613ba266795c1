package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"tripgems/internal/models/db_models"
	"tripgems/internal/models/response_models"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/repositories"
	"tripgems/pkg/utils"
)

type ItineraryServiceInterface interface {
	PlanItinerary(ctx context.Context, prefs tour_models.UserPreferences) (*response_models.ItineraryResult, error)
	GetItinerary(ctx context.Context, id string) (*response_models.ItineraryResult, error)
}

type ItineraryService struct {
	ingestion   IngestionServiceInterface
	scoring     ScoringServiceInterface
	selector    SelectorServiceInterface
	builder     ItineraryBuilderInterface
	interpreter SolutionInterpreterInterface
	routing     RoutingClient
	repo        repositories.ItineraryRepository
}

func NewItineraryService(
	ingestion IngestionServiceInterface,
	scoring ScoringServiceInterface,
	selector SelectorServiceInterface,
	builder ItineraryBuilderInterface,
	interpreter SolutionInterpreterInterface,
	routing RoutingClient,
	repo repositories.ItineraryRepository,
) ItineraryServiceInterface {
	return &ItineraryService{
		ingestion:   ingestion,
		scoring:     scoring,
		selector:    selector,
		builder:     builder,
		interpreter: interpreter,
		routing:     routing,
		repo:        repo,
	}
}

func (s *ItineraryService) PlanItinerary(ctx context.Context, prefs tour_models.UserPreferences) (res *response_models.ItineraryResult, err error) {
	ctx, span := utils.StartSpan(ctx, "itinerary.plan",
		attribute.String("city", prefs.City),
		attribute.String("policy", string(prefs.Policy())),
	)
	defer func() { utils.EndSpan(span, err) }()

	if strings.TrimSpace(prefs.City) == "" || len(prefs.Categories) == 0 {
		return nil, fmt.Errorf("%w: city and categories are required", utils.ErrInvalidInput)
	}
	if err := ValidateTimeWindow(prefs); err != nil {
		return nil, err
	}

	records := FilterScorable(s.ingestion.FetchCityPlaces(ctx, prefs.City, prefs.Categories))
	scored := s.scoring.ScorePlaces(records, prefs.Policy())
	selection := s.selector.SelectTopLocations(scored, prefs, prefs.StopLimit())

	locations := s.builder.PrepareLocations(selection.Places, prefs)
	req, index, err := s.builder.BuildOptimizationRequest(locations, prefs)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("city", prefs.City).
		Str("policy", string(prefs.Policy())).
		Int("jobs", len(req.Jobs)).
		Msg("requesting route optimization")

	solution, err := s.routing.Optimize(ctx, req)
	if err != nil {
		return nil, err
	}

	interp := s.interpreter.Interpret(solution, locations, index)

	result := &response_models.ItineraryResult{
		City:         prefs.City,
		Policy:       prefs.Policy(),
		TravelMode:   req.Vehicles[0].Profile,
		Locations:    locations,
		Steps:        interp.Steps,
		VisitedCount: interp.VisitedCount,
		Warnings:     append(append([]string{}, selection.Warnings...), interp.Warnings...),
		Summary:      Summary(interp),
	}
	for _, idx := range interp.Dropped {
		loc := locations[idx]
		result.Dropped = append(result.Dropped, response_models.DroppedStop{
			LocationIndex: idx,
			ID:            loc.ID,
			Name:          loc.Name,
			Category:      loc.Category,
			Lat:           loc.Lat,
			Lng:           loc.Lng,
		})
	}

	result.Route = s.routeGeometry(ctx, result.TravelMode, interp.Steps)

	id, err := s.repo.Create(ctx, toItineraryRow(prefs, result))
	switch {
	case err != nil:
		log.Error().Err(err).Str("city", prefs.City).Msg("persisting itinerary failed")
	case id != uuid.Nil:
		result.ID = id.String()
	}

	return result, nil
}

// routeGeometry asks for a display polyline; failure only means no line is drawn.
func (s *ItineraryService) routeGeometry(ctx context.Context, profile string, steps []tour_models.ItineraryStep) [][2]float64 {
	coords := RouteCoordinates(steps)
	if len(coords) < 2 {
		return nil
	}
	line, err := s.routing.Directions(ctx, profile, coords)
	if err != nil {
		log.Warn().Err(err).Msg("error fetching directions, no route line drawn")
		return nil
	}
	return line
}

// RouteCoordinates lists step coordinates in visiting order, dropping
// consecutive duplicates.
func RouteCoordinates(steps []tour_models.ItineraryStep) [][2]float64 {
	out := make([][2]float64, 0, len(steps))
	for _, st := range steps {
		c := [2]float64{st.Lng, st.Lat}
		if len(out) > 0 && out[len(out)-1] == c {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *ItineraryService) GetItinerary(ctx context.Context, id string) (*response_models.ItineraryResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: itinerary id must be a uuid", utils.ErrInvalidInput)
	}

	row, err := s.repo.GetByIDWithStops(ctx, id)
	if err != nil {
		return nil, errors.Join(utils.ErrDatabaseError, err)
	}
	if row == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return fromItineraryRow(row), nil
}

func toItineraryRow(prefs tour_models.UserPreferences, res *response_models.ItineraryResult) *db_models.Itinerary {
	startLat, startLng := prefs.StartPoint()
	row := &db_models.Itinerary{
		City:         res.City,
		TravelMode:   res.TravelMode,
		Policy:       string(res.Policy),
		StartLat:     startLat,
		StartLng:     startLng,
		StartTime:    prefs.StartTime,
		EndTime:      prefs.EndTime,
		VisitedCount: res.VisitedCount,
		Summary:      res.Summary,
		Warnings:     res.Warnings,
	}

	pos := 0
	for _, st := range res.Steps {
		row.Stops = append(row.Stops, db_models.ItineraryStop{
			Position:      pos,
			StepType:      string(st.Type),
			LocationIndex: st.LocationIndex,
			ExternalID:    res.Locations[st.LocationIndex].ID,
			Name:          st.Name,
			Category:      string(st.Category),
			Latitude:      st.Lat,
			Longitude:     st.Lng,
			Arrival:       st.Arrival,
		})
		pos++
	}
	for _, d := range res.Dropped {
		loc := res.Locations[d.LocationIndex]
		row.Stops = append(row.Stops, db_models.ItineraryStop{
			Position:      pos,
			StepType:      string(tour_models.StepJob),
			LocationIndex: d.LocationIndex,
			ExternalID:    loc.ID,
			Name:          loc.Name,
			Category:      string(loc.Category),
			Latitude:      loc.Lat,
			Longitude:     loc.Lng,
			Dropped:       true,
		})
		pos++
	}
	return row
}

func fromItineraryRow(row *db_models.Itinerary) *response_models.ItineraryResult {
	res := &response_models.ItineraryResult{
		ID:           row.ID.String(),
		City:         row.City,
		Policy:       tour_models.ParsePolicy(row.Policy),
		TravelMode:   row.TravelMode,
		VisitedCount: row.VisitedCount,
		Summary:      row.Summary,
		Warnings:     row.Warnings,
	}

	for _, st := range row.Stops {
		if st.Dropped {
			res.Dropped = append(res.Dropped, response_models.DroppedStop{
				LocationIndex: st.LocationIndex,
				ID:            st.ExternalID,
				Name:          st.Name,
				Category:      tour_models.Category(st.Category),
				Lat:           st.Latitude,
				Lng:           st.Longitude,
			})
			continue
		}
		res.Steps = append(res.Steps, tour_models.ItineraryStep{
			Type:          tour_models.StepType(st.StepType),
			LocationIndex: st.LocationIndex,
			Name:          st.Name,
			Category:      tour_models.Category(st.Category),
			Lat:           st.Latitude,
			Lng:           st.Longitude,
			Arrival:       st.Arrival,
			ArrivalClock:  utils.SecondsToClock(st.Arrival),
		})
	}
	return res
}
