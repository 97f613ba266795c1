package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripgems/internal/repositories"
	"tripgems/internal/services"
)

var Module = fx.Provide(
	provideItineraryRepo,
	services.NewSelectorService,
	services.NewItineraryBuilder,
	services.NewSolutionInterpreter,
	provideItineraryService,
)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	ingestion services.IngestionServiceInterface,
	scoring services.ScoringServiceInterface,
	selector services.SelectorServiceInterface,
	builder services.ItineraryBuilderInterface,
	interpreter services.SolutionInterpreterInterface,
	routing services.RoutingClient,
	itineraryRepo repositories.ItineraryRepository,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(ingestion, scoring, selector, builder, interpreter, routing, itineraryRepo)
}
