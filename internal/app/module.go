package app

import (
	"go.uber.org/fx"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/cli"
	"hatchlog/internal/app/generator"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/app/ui/wire"
	"hatchlog/internal/app/watcher"
	"hatchlog/internal/config/logger"
)

// Module wires every application package
var Module = fx.Options(
	logger.Module,
	bus.Module,
	logs.Module,
	stream.Module,
	health.Module,
	watcher.Module,
	generator.Module,
	wire.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
