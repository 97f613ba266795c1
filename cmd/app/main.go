package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"tripgems/cmd/fx/cache_fx"
	"tripgems/cmd/fx/config_fx"
	"tripgems/cmd/fx/controllers_fx"
	"tripgems/cmd/fx/db_fx"
	"tripgems/cmd/fx/itinerary_fx"
	"tripgems/cmd/fx/places_fx"
	"tripgems/cmd/fx/routing_fx"
	"tripgems/cmd/fx/tourpedia_fx"
	"tripgems/internal/api/controllers"
	"tripgems/internal/config"
	"tripgems/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading configuration from the environment")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		cache_fx.Module,
		tourpedia_fx.Module,
		routing_fx.Module,
		places_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("port", cfg.App.Port).Msg("starting HTTP server")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	itineraryController *controllers.ItineraryController,
	placesController *controllers.PlacesController,
	healthController *controllers.HealthController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.TracingMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController, placesController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	placesController *controllers.PlacesController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Health)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("", itineraryController.PlanItinerary)
	itineraryGroup.GET("/:id", itineraryController.GetItinerary)
	itineraryGroup.GET("/:id/map", itineraryController.GetItineraryMap)

	placesGroup := r.Group("/places/:city")
	placesGroup.GET("/scored", placesController.GetScoredPlaces)
	placesGroup.GET("/gems", placesController.GetHiddenGems)
	placesGroup.GET("/traps", placesController.GetTouristTraps)
	placesGroup.GET("/stored", placesController.GetStoredPlaces)
	placesGroup.GET("/map", placesController.GetPlacesMap)
}
