package config_fx

import (
	"context"

	"go.uber.org/fx"
	"tripgems/internal/config"
	"tripgems/internal/infra"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Invoke(infra.InitLogger),
	fx.Invoke(registerTracing),
)

func registerTracing(lc fx.Lifecycle, cfg *config.Config) error {
	shutdown, err := infra.InitTracing(context.Background(), cfg)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return nil
}
