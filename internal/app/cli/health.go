package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"hatchlog/internal/app/health"
	"hatchlog/internal/app/ui/components"
)

// runHealth fetches one snapshot list and prints the routes matching the pattern
func (c *cli) runHealth(ctx context.Context) error {
	matcher, err := health.NewMatcher(c.opts.Pattern)
	if err != nil {
		return err
	}

	snapshots, err := c.client.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch health from %s: %w", c.cfg.HealthURL(), err)
	}

	selected := health.Select(snapshots, matcher)
	slices.SortFunc(selected, func(a, b health.Snapshot) int {
		return strings.Compare(a.Key(), b.Key())
	})

	c.log.Debug().Msgf("Fetched %d health snapshots, %d selected", len(snapshots), len(selected))

	fmt.Fprint(c.out, renderSnapshots(selected, time.Now()))

	return nil
}

// renderSnapshots renders one aligned row per route
func renderSnapshots(snapshots []health.Snapshot, now time.Time) string {
	if len(snapshots) == 0 {
		return components.EmptyStateStyle.Render("No routes match.") + "\n"
	}

	keyWidth, statusWidth := 0, 0
	for _, s := range snapshots {
		keyWidth = max(keyWidth, lipgloss.Width(s.Key()))
		statusWidth = max(statusWidth, len(s.Status))
	}

	var b strings.Builder

	for _, s := range snapshots {
		style := components.HealthStyle(string(s.Status))

		b.WriteString(style.Render("●"))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Width(keyWidth + 2).Render(s.Key()))
		b.WriteString(style.Width(statusWidth + 2).Render(string(s.Status)))

		details := make([]string, 0, 2)
		if s.Addr != "" {
			details = append(details, s.Addr)
		}

		if !s.Since.IsZero() {
			details = append(details, "since "+formatAge(now.Sub(s.Since)))
		}

		b.WriteString(muted.Render(strings.Join(details, "  ")))
		b.WriteString("\n")
	}

	return b.String()
}

// formatAge renders a duration at a coarse, human precision
func formatAge(d time.Duration) string {
	switch {
	case d < 0:
		return "0s"
	case d < time.Minute:
		return d.Truncate(time.Second).String()
	case d < time.Hour:
		return strings.TrimSuffix(d.Truncate(time.Minute).String(), "0s")
	default:
		return strings.TrimSuffix(strings.TrimSuffix(d.Truncate(time.Hour).String(), "0s"), "0m")
	}
}
