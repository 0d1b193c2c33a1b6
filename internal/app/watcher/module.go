package watcher

import (
	"go.uber.org/fx"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Module provides the config watcher
var Module = fx.Options(
	fx.Provide(func(b bus.Bus, log logger.Logger) (Watcher, error) {
		return NewWatcher(config.FileName, config.LoadFile, b, log.WithComponent("WATCHER"))
	}),
)
