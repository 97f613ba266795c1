package infra

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"tripgems/internal/config"
	"tripgems/internal/models/db_models"
)

// InitPostgresql opens the connection pool and migrates the tables this
// service owns. It returns nil when the database is disabled; repositories
// built on a nil pool fall back to no-op implementations.
func InitPostgresql(cfg *config.Config) *gorm.DB {
	if !cfg.Database.Enabled {
		log.Warn().Msg("database disabled, itineraries and places will not be persisted")
		return nil
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := connectionPool.AutoMigrate(
		&db_models.PlaceRow{},
		&db_models.Itinerary{},
		&db_models.ItineraryStop{},
	); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("error closing database connection")
	} else {
		log.Info().Msg("PostgreSQL database connection closed successfully")
	}
}
