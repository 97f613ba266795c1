package tourpedia_fx

import (
	"net/http"

	"go.uber.org/fx"
	"tripgems/internal/config"
	"tripgems/internal/services"
)

var Module = fx.Provide(
	provideTourpediaClient,
	provideIngestionService,
	provideTrapService,
)

func provideTourpediaClient(cfg *config.Config, cache services.PlaceCache) services.PlacesProvider {
	httpClient := &http.Client{Timeout: cfg.Tourpedia.Timeout}
	return services.NewTourpediaClient(cfg.Tourpedia.BaseURL, httpClient, cache)
}

func provideIngestionService(cfg *config.Config, provider services.PlacesProvider) services.IngestionServiceInterface {
	return services.NewIngestionService(provider, cfg.Tourpedia.Concurrency)
}

func provideTrapService(cfg *config.Config, ingestion services.IngestionServiceInterface, provider services.PlacesProvider) services.TrapServiceInterface {
	return services.NewTrapService(ingestion, provider, cfg.Tourpedia.Concurrency)
}
