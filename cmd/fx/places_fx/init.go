package places_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripgems/internal/repositories"
	"tripgems/internal/services"
)

var Module = fx.Provide(
	providePlaceRepo,
	services.NewScoringService,
	services.NewMapService,
	services.NewExportService,
	providePlaceService,
)

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func providePlaceService(
	ingestion services.IngestionServiceInterface,
	scoring services.ScoringServiceInterface,
	traps services.TrapServiceInterface,
	placeRepo repositories.PlaceRepository,
) services.PlaceServiceInterface {
	return services.NewPlaceService(ingestion, scoring, traps, placeRepo)
}
