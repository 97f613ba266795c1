package routing_fx

import (
	"net/http"

	"go.uber.org/fx"
	"tripgems/internal/config"
	"tripgems/internal/services"
)

var Module = fx.Provide(provideRoutingClient)

func provideRoutingClient(cfg *config.Config) services.RoutingClient {
	httpClient := &http.Client{Timeout: cfg.Routing.Timeout}
	return services.NewORSClient(cfg.Routing.BaseURL, cfg.Routing.APIKey, httpClient)
}
