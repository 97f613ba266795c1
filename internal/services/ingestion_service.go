package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"tripgems/internal/models/tour_models"
)

type IngestionServiceInterface interface {
	// FetchCityPlaces issues one places request per category concurrently.
	// A failed category is logged and contributes nothing.
	FetchCityPlaces(ctx context.Context, city string, categories []tour_models.Category) []tour_models.PlaceRecord
}

type IngestionService struct {
	provider    PlacesProvider
	concurrency int
}

func NewIngestionService(provider PlacesProvider, concurrency int) IngestionServiceInterface {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &IngestionService{provider: provider, concurrency: concurrency}
}

func (s *IngestionService) FetchCityPlaces(ctx context.Context, city string, categories []tour_models.Category) []tour_models.PlaceRecord {
	cats := normalizeCategories(categories)
	results := make([][]tour_models.PlaceRecord, len(cats))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, cat := range cats {
		g.Go(func() error {
			places, err := s.provider.GetPlaces(ctx, city, cat)
			if err != nil {
				log.Warn().Err(err).Str("city", city).Str("category", string(cat)).Msg("fetching places failed, skipping category")
				return nil
			}
			results[i] = places
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]tour_models.PlaceRecord, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}

	log.Debug().Str("city", city).Int("categories", len(cats)).Int("places", len(out)).Msg("fetched city places")
	return out
}

// normalizeCategories trims, lower-cases and de-duplicates, keeping order.
func normalizeCategories(categories []tour_models.Category) []tour_models.Category {
	seen := make(map[tour_models.Category]struct{}, len(categories))
	out := make([]tour_models.Category, 0, len(categories))
	for _, c := range categories {
		c = tour_models.ParseCategory(string(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
