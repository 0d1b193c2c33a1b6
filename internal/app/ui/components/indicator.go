package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// Link describes the stream link state shown by the indicator
type Link int

const (
	LinkDisconnected Link = iota
	LinkConnecting
	LinkConnected
)

const (
	dotEmpty = "○"
	dotHalf  = "◎"
	dotFull  = "●"

	pulseFPS              = UITicksPerSecond
	pulseAngularFrequency = 6.0
	pulseDampingRatio     = 0.6

	// Ticks the spring pulls toward each end before reversing
	pulseHoldTicks = 4

	pulseLowThreshold  = 0.35
	pulseHighThreshold = 0.7
)

// Indicator renders the link state and pulses while a session is connecting
type Indicator struct {
	spring    harmonica.Spring
	link      Link
	position  float64
	velocity  float64
	target    float64
	tickCount int
}

// NewIndicator creates an indicator in the disconnected state
func NewIndicator() *Indicator {
	return &Indicator{
		spring: harmonica.NewSpring(harmonica.FPS(pulseFPS), pulseAngularFrequency, pulseDampingRatio),
		link:   LinkDisconnected,
	}
}

// SetLink switches the link state and resets the pulse
func (i *Indicator) SetLink(link Link) {
	if i.link == link {
		return
	}

	i.link = link
	i.position = 0
	i.velocity = 0
	i.target = 0
	i.tickCount = 0

	if link == LinkConnecting {
		i.target = 1
	}
}

// Link returns the current link state
func (i *Indicator) Link() Link {
	return i.link
}

// Update advances the pulse by one UI tick
func (i *Indicator) Update() {
	if i.link != LinkConnecting {
		return
	}

	i.tickCount++
	if i.tickCount >= pulseHoldTicks {
		i.tickCount = 0
		i.target = 1 - i.target
	}

	i.position, i.velocity = i.spring.Update(i.position, i.velocity, i.target)
}

// Frame returns the glyph for the current state
func (i *Indicator) Frame() string {
	switch i.link {
	case LinkConnected:
		return dotFull
	case LinkConnecting:
		switch {
		case i.position >= pulseHighThreshold:
			return dotFull
		case i.position >= pulseLowThreshold:
			return dotHalf
		default:
			return dotEmpty
		}
	default:
		return dotEmpty
	}
}

// Label returns a short description of the link state
func (i *Indicator) Label() string {
	switch i.link {
	case LinkConnected:
		return "live"
	case LinkConnecting:
		return "connecting"
	default:
		return "offline"
	}
}

// Render returns the styled glyph and label
func (i *Indicator) Render() string {
	style := lipgloss.NewStyle().Foreground(i.color())
	return style.Render(i.Frame() + " " + i.Label())
}

func (i *Indicator) color() lipgloss.Color {
	switch i.link {
	case LinkConnected:
		return FgConnected
	case LinkConnecting:
		return FgConnecting
	default:
		return FgDisconnected
	}
}
