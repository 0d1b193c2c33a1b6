//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/generator"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/app/ui/wire"
	"hatchlog/internal/app/watcher"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute() (exitCode int, err error)
}

// Params contains the dependencies of the cli
type Params struct {
	fx.In

	Options   *Options
	Config    *config.Config
	Bus       bus.Bus
	Tailer    stream.Tailer
	Poller    health.Poller
	Client    health.Client
	Watcher   watcher.Watcher
	Formatter *logs.Formatter
	Generator generator.Generator
	UI        wire.UI
	Logger    logger.Logger
}

// cli represents the command-line interface for the application
type cli struct {
	opts      *Options
	cfg       *config.Config
	bus       bus.Bus
	tailer    stream.Tailer
	poller    health.Poller
	client    health.Client
	watcher   watcher.Watcher
	formatter *logs.Formatter
	generator generator.Generator
	ui        wire.UI
	out       io.Writer
	errOut    io.Writer
	log       logger.Logger
}

// NewCLI creates a new cli instance
func NewCLI(p Params) CLI {
	return &cli{
		opts:      p.Options,
		cfg:       p.Config,
		bus:       p.Bus,
		tailer:    p.Tailer,
		poller:    p.Poller,
		client:    p.Client,
		watcher:   p.Watcher,
		formatter: p.Formatter,
		generator: p.Generator,
		ui:        p.UI,
		out:       os.Stdout,
		errOut:    os.Stderr,
		log:       p.Logger.WithComponent("CLI"),
	}
}

// Execute runs the parsed command and returns the process exit code
func (c *cli) Execute() (int, error) {
	ctx, cancel := c.signalContext(context.Background())
	defer cancel()

	var err error

	switch c.opts.Type {
	case CommandHelp:
		fmt.Fprint(c.out, renderHelp())
	case CommandVersion:
		fmt.Fprintln(c.out, RenderTitle())
	case CommandInit:
		err = c.generator.Generate(generator.OptionsFrom(c.cfg), c.opts.Force, c.opts.DryRun)
	case CommandHealth:
		err = c.runHealth(ctx)
	default:
		err = c.runTail(ctx)
	}

	if err != nil {
		c.log.Debug().Err(err).Msg("Command failed")
		fmt.Fprintln(c.errOut, RenderError(err))

		return 1, err
	}

	return 0, nil
}

// signalContext cancels on SIGINT or SIGTERM and announces the signal on the bus
func (c *cli) signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			c.log.Info().Msgf("Received signal %s, shutting down", sig)
			c.bus.Publish(bus.Message{
				Type:     bus.EventSignal,
				Data:     bus.Signal{Name: sig.String()},
				Critical: true,
			})
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
