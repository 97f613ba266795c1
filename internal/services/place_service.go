package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"tripgems/internal/models/db_models"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/repositories"
	"tripgems/pkg/utils"
)

const (
	DefaultGemMinReviews = 10
	DefaultGemMaxReviews = 10000
)

type PlaceServiceInterface interface {
	ScoredPlaces(ctx context.Context, city string, categories []tour_models.Category, policy tour_models.ScoringPolicy, limit int) ([]tour_models.ScoredPlace, error)
	HiddenGems(ctx context.Context, city string, categories []tour_models.Category, minReviews, maxReviews, limit int) ([]tour_models.PlaceRecord, error)
	TouristTraps(ctx context.Context, city string, categories []tour_models.Category, criteria TrapCriteria) (TrapResult, error)
	// StoredPlaces reads back what the last computation of the given kind persisted.
	StoredPlaces(ctx context.Context, city string, kind db_models.PlaceKind) ([]db_models.PlaceRow, error)
}

type PlaceService struct {
	ingestion IngestionServiceInterface
	scoring   ScoringServiceInterface
	traps     TrapServiceInterface
	repo      repositories.PlaceRepository
}

func NewPlaceService(
	ingestion IngestionServiceInterface,
	scoring ScoringServiceInterface,
	traps TrapServiceInterface,
	repo repositories.PlaceRepository,
) PlaceServiceInterface {
	return &PlaceService{
		ingestion: ingestion,
		scoring:   scoring,
		traps:     traps,
		repo:      repo,
	}
}

// ParseCategoryList splits a comma separated list; empty means every category.
func ParseCategoryList(raw string) []tour_models.Category {
	out := make([]tour_models.Category, 0)
	for _, part := range strings.Split(raw, ",") {
		if c := tour_models.ParseCategory(part); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append(out, tour_models.AllCategories...)
	}
	return out
}

func (s *PlaceService) ScoredPlaces(ctx context.Context, city string, categories []tour_models.Category, policy tour_models.ScoringPolicy, limit int) ([]tour_models.ScoredPlace, error) {
	if err := requireCity(city); err != nil {
		return nil, err
	}

	records := FilterScorable(s.ingestion.FetchCityPlaces(ctx, city, categories))
	scored := s.scoring.ScorePlaces(records, policy)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})

	rows := make([]db_models.PlaceRow, 0, len(scored))
	for _, p := range scored {
		row := placeRow(p.PlaceRecord)
		row.Policy = string(policy)
		row.NormalizedPolarity = p.NormalizedPolarity
		row.NormalizedReviews = p.NormalizedReviews
		row.OverallScore = p.OverallScore
		rows = append(rows, row)
	}
	s.store(ctx, city, db_models.PlaceKindScored, rows)

	return truncate(scored, limit), nil
}

func (s *PlaceService) HiddenGems(ctx context.Context, city string, categories []tour_models.Category, minReviews, maxReviews, limit int) ([]tour_models.PlaceRecord, error) {
	if err := requireCity(city); err != nil {
		return nil, err
	}
	if minReviews <= 0 {
		minReviews = DefaultGemMinReviews
	}
	if maxReviews <= 0 {
		maxReviews = DefaultGemMaxReviews
	}
	if minReviews > maxReviews {
		return nil, fmt.Errorf("%w: min_reviews must not exceed max_reviews", utils.ErrInvalidInput)
	}

	gems := FilterByReviewRange(s.ingestion.FetchCityPlaces(ctx, city, categories), minReviews, maxReviews)
	SortHiddenGems(gems)

	rows := make([]db_models.PlaceRow, 0, len(gems))
	for _, g := range gems {
		rows = append(rows, placeRow(g))
	}
	s.store(ctx, city, db_models.PlaceKindGem, rows)

	return truncate(gems, limit), nil
}

func (s *PlaceService) TouristTraps(ctx context.Context, city string, categories []tour_models.Category, criteria TrapCriteria) (TrapResult, error) {
	if err := requireCity(city); err != nil {
		return TrapResult{}, err
	}
	if criteria.MaxReviews > 0 && criteria.MinReviews > criteria.MaxReviews {
		return TrapResult{}, fmt.Errorf("%w: min_reviews must not exceed max_reviews", utils.ErrInvalidInput)
	}

	res := s.traps.DetectTraps(ctx, city, categories, criteria)

	rows := make([]db_models.PlaceRow, 0, len(res.Places))
	for _, t := range res.Places {
		row := placeRow(t.PlaceRecord)
		row.MonthlyReviews = make([]int64, len(t.MonthlyReviews))
		for i, n := range t.MonthlyReviews {
			row.MonthlyReviews[i] = int64(n)
		}
		row.ReviewVariance = t.ReviewVariance
		rows = append(rows, row)
	}
	s.store(ctx, city, db_models.PlaceKindTrap, rows)

	return res, nil
}

func (s *PlaceService) StoredPlaces(ctx context.Context, city string, kind db_models.PlaceKind) ([]db_models.PlaceRow, error) {
	if err := requireCity(city); err != nil {
		return nil, err
	}
	switch kind {
	case db_models.PlaceKindScored, db_models.PlaceKindGem, db_models.PlaceKindTrap:
	default:
		return nil, fmt.Errorf("%w: unknown place kind %q", utils.ErrInvalidInput, kind)
	}

	rows, err := s.repo.ListCityPlaces(ctx, city, kind)
	if err != nil {
		return nil, errors.Join(utils.ErrDatabaseError, err)
	}
	return rows, nil
}

// FilterByReviewRange keeps places whose review count lies in [minReviews, maxReviews];
// a missing count is treated as zero.
func FilterByReviewRange(places []tour_models.PlaceRecord, minReviews, maxReviews int) []tour_models.PlaceRecord {
	out := make([]tour_models.PlaceRecord, 0, len(places))
	for _, p := range places {
		n := p.ReviewCount()
		if n >= minReviews && n <= maxReviews {
			out = append(out, p)
		}
	}
	return out
}

// SortHiddenGems orders by polarity descending, then by fewer reviews.
func SortHiddenGems(places []tour_models.PlaceRecord) {
	sort.SliceStable(places, func(i, j int) bool {
		a, b := places[i], places[j]
		if a.PolarityValue() != b.PolarityValue() {
			return a.PolarityValue() > b.PolarityValue()
		}
		return a.ReviewCount() < b.ReviewCount()
	})
}

func (s *PlaceService) store(ctx context.Context, city string, kind db_models.PlaceKind, rows []db_models.PlaceRow) {
	if err := s.repo.ReplaceCityPlaces(ctx, city, kind, rows); err != nil {
		log.Error().Err(err).Str("city", city).Str("kind", string(kind)).Msg("storing places failed")
	}
}

func placeRow(p tour_models.PlaceRecord) db_models.PlaceRow {
	return db_models.PlaceRow{
		ExternalID: p.ID,
		Name:       p.Name,
		Category:   string(p.Category),
		Location:   p.Location,
		Latitude:   p.Lat,
		Longitude:  p.Lng,
		Polarity:   p.PolarityValue(),
		NumReviews: p.ReviewCount(),
	}
}

func requireCity(city string) error {
	if strings.TrimSpace(city) == "" {
		return fmt.Errorf("%w: city is required", utils.ErrInvalidInput)
	}
	return nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
