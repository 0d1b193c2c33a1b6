package health

import (
	"go.uber.org/fx"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/transport"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Module provides the health poller
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) Client {
		return NewClient(cfg.HealthURL(), transport.NewPollClient(cfg))
	}),
	fx.Provide(func(cfg *config.Config, client Client, b bus.Bus, log logger.Logger) Poller {
		return NewPoller(client, cfg.Health.Interval, b, log.WithComponent("HEALTH"))
	}),
)
