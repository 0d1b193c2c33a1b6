package bus

import (
	"context"

	"go.uber.org/fx"

	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Module provides bus for dependency injection
var Module = fx.Module("bus",
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) Bus {
		b := New(cfg, log.WithComponent("BUS"))

		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				b.Close()
				return nil
			},
		})

		return b
	}),
)
