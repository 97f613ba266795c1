package main

import (
	"context"
	"io"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"tripgems/cmd/fx/cache_fx"
	"tripgems/cmd/fx/config_fx"
	"tripgems/cmd/fx/db_fx"
	"tripgems/cmd/fx/places_fx"
	"tripgems/cmd/fx/tourpedia_fx"
	"tripgems/internal/config"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/services"
)

// prep precomputes hidden gems and tourist traps for a list of cities,
// writing one CSV per city and kind and storing the rows in the database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading configuration from the environment")
	}

	app := fx.New(
		fx.NopLogger,
		config_fx.Module,
		db_fx.Module,
		cache_fx.Module,
		tourpedia_fx.Module,
		places_fx.Module,

		fx.Invoke(RunPrep),
	)

	app.Run()
}

func RunPrep(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	places services.PlaceServiceInterface,
	export services.ExportServiceInterface,
) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if failed := prepCities(ctx, cfg, places, export); failed > 0 {
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// prepCities handles the cities one after the other and returns how many failed.
func prepCities(ctx context.Context, cfg *config.Config, places services.PlaceServiceInterface, export services.ExportServiceInterface) int {
	failed := 0
	for _, city := range cfg.Prep.Cities {
		if ctx.Err() != nil {
			break
		}
		if err := prepCity(ctx, cfg, city, places, export); err != nil {
			log.Error().Err(err).Str("city", city).Msg("prep failed")
			failed++
		}
	}
	log.Info().Int("cities", len(cfg.Prep.Cities)).Int("failed", failed).Msg("prep finished")
	return failed
}

func prepCity(ctx context.Context, cfg *config.Config, city string, places services.PlaceServiceInterface, export services.ExportServiceInterface) error {
	gems, err := places.HiddenGems(ctx, city, tour_models.AllCategories, 0, 0, 0)
	if err != nil {
		return err
	}
	path, err := export.SaveCityFile(cfg.Prep.OutputDir, "combined_places", city, func(w io.Writer) error {
		return export.WriteGems(w, gems)
	})
	if err != nil {
		return err
	}
	log.Info().Str("city", city).Int("places", len(gems)).Str("file", path).Msg("hidden gems written")

	if !cfg.Prep.Traps {
		return nil
	}

	traps, err := places.TouristTraps(ctx, city, tour_models.TrapCategories, services.DefaultTrapCriteria())
	if err != nil {
		return err
	}
	path, err = export.SaveCityFile(cfg.Prep.OutputDir, "tourist_traps", city, func(w io.Writer) error {
		return export.WriteTraps(w, traps.Places)
	})
	if err != nil {
		return err
	}
	log.Info().Str("city", city).Int("places", len(traps.Places)).Str("file", path).Msg("tourist traps written")
	return nil
}
