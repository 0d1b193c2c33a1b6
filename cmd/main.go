package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"hatchlog/internal/app"
	"hatchlog/internal/app/cli"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}

	application := createApp(cfg, opts)
	application.Run()
}

// loadConfig loads hatchlog.yaml; init still works next to a broken file
func loadConfig(opts *cli.Options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil && opts.Type == cli.CommandInit {
		return config.DefaultConfig(), nil
	}

	return cfg, err
}

// usesTUI reports whether the terminal belongs to the viewer
func usesTUI(opts *cli.Options) bool {
	return opts.Type == cli.CommandTail && !opts.NoUI
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config, opts *cli.Options) *fx.App {
	options := []fx.Option{
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, opts),
		app.Module,
	}

	if usesTUI(opts) {
		options = append(options, fx.Decorate(func(cfg *config.Config) logger.Logger {
			return logger.NewLoggerWithOutput(cfg, io.Discard)
		}))
	}

	return fx.New(options...)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}
