package controllers_fx

import (
	"go.uber.org/fx"
	"tripgems/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewHealthController))
