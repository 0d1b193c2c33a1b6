package stream

import (
	"go.uber.org/fx"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/transport"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Module provides the log tailer
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config, b bus.Bus, log logger.Logger) Tailer {
		return NewTailer(cfg, transport.NewStreamClient(), b, log.WithComponent("STREAM"))
	}),
)
