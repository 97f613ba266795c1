package cache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"tripgems/internal/config"
	"tripgems/internal/infra"
	"tripgems/internal/services"
	mem "tripgems/pkg/memcache"
)

var Module = fx.Provide(provideRedis, providePlaceCache)

func provideRedis(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	client := infra.InitRedis(cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if client == nil {
				return nil
			}
			return client.Close()
		},
	})
	return client
}

func providePlaceCache(cfg *config.Config, client *redis.Client) services.PlaceCache {
	if client != nil {
		return services.NewRedisPlaceCache(client, cfg.Redis.TTL)
	}
	log.Info().Msg("using in-memory place cache")
	return services.NewMemoryPlaceCache(mem.NewTTLStore(), cfg.Redis.TTL)
}
