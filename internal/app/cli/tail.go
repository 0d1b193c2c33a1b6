package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/errors"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/transport"
	"hatchlog/internal/config"
)

// runTail follows the stream in the TUI, or as plain lines with --no-ui
func (c *cli) runTail(ctx context.Context) error {
	if err := c.applyFilterFlags(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan logs.Change
	if c.opts.NoUI {
		changes = c.tailer.Subscribe(ctx)
	}

	if err := c.tailer.Start(ctx); err != nil {
		return err
	}
	defer c.tailer.Stop()

	if !c.opts.NoUI {
		if err := c.poller.Start(ctx); err != nil {
			return err
		}
		defer c.poller.Stop()
	}

	// Reloads restart the tailer and poller, so they must finish before either is stopped
	stopReloads := c.startReloads(ctx)
	defer stopReloads()

	if err := c.watcher.Start(ctx); err != nil {
		c.log.Warn().Err(err).Msg("Config hot reload disabled")
	}
	defer c.watcher.Close()

	if c.opts.NoUI {
		return c.printEntries(ctx, changes, logs.NewFilter(c.cfg.Filter.Levels, c.cfg.Filter.Search))
	}

	return c.runUI(ctx)
}

// applyFilterFlags lets --level and --search replace the configured view filter
func (c *cli) applyFilterFlags() error {
	if len(c.opts.Levels) > 0 {
		levels := make([]string, 0, len(c.opts.Levels))

		for _, level := range c.opts.Levels {
			level = strings.ToLower(strings.TrimSpace(level))
			if !slices.Contains(config.Levels, level) {
				return fmt.Errorf("%w: '%s' (must be one of %s)", errors.ErrInvalidFilterLevel, level, strings.Join(config.Levels, ", "))
			}

			levels = append(levels, level)
		}

		c.cfg.Filter.Levels = levels
	}

	if c.opts.Search != "" {
		c.cfg.Filter.Search = c.opts.Search
	}

	return nil
}

// runUI blocks until the viewer exits or ctx is cancelled
func (c *cli) runUI(ctx context.Context) error {
	p, err := c.ui(ctx)
	if err != nil {
		return err
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	return nil
}

// printEntries writes every visible appended entry until ctx is done.
// Changes only wake the loop up; the tail is read past the last printed id,
// so notifications dropped for a slow terminal lose no lines.
func (c *cli) printEntries(ctx context.Context, changes <-chan logs.Change, filter logs.Filter) error {
	if f, ok := c.out.(*os.File); ok {
		c.formatter.SetWidth(logs.TerminalWidth(f.Fd()))
	}

	var lastID uint64

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}

			lastID = c.printSince(lastID, filter)
		}
	}
}

// printSince writes visible entries newer than lastID and returns the new mark.
// Ids survive Clear, so the mark never goes back.
func (c *cli) printSince(lastID uint64, filter logs.Filter) uint64 {
	for _, entry := range c.tailer.Entries() {
		if entry.ID <= lastID {
			continue
		}

		lastID = entry.ID

		if filter.Match(entry) {
			c.formatter.WriteFormatted(c.out, entry)
		}
	}

	return lastID
}

// startReloads applies reloads in the background; the returned func cancels and waits for it
func (c *cli) startReloads(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	msgs := c.bus.Subscribe(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		c.applyReloads(ctx, msgs)
	}()

	return func() {
		cancel()
		<-done
	}
}

// applyReloads pushes reloaded connection settings into the tailer and poller
func (c *cli) applyReloads(ctx context.Context, msgs <-chan bus.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			data, isReload := msg.Data.(bus.ConfigReloaded)
			if msg.Type != bus.EventConfigReloaded || !isReload || data.Config == nil {
				continue
			}

			c.reconfigure(data.Config)
		}
	}
}

func (c *cli) reconfigure(cfg *config.Config) {
	if err := c.tailer.Reconfigure(cfg); err != nil {
		c.log.Warn().Err(err).Msg("Failed to apply reloaded stream settings")
	}

	client := health.NewClient(cfg.HealthURL(), transport.NewPollClient(cfg))
	if err := c.poller.Reconfigure(client, cfg.Health.Interval); err != nil {
		c.log.Warn().Err(err).Msg("Failed to apply reloaded health settings")
	}

	c.log.Info().Msgf("Applied configuration from %s", cfg.StreamURL())
}
