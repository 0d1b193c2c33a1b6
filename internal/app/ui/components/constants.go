package components

import "time"

// UI timing constants
const (
	// UITickInterval drives the connection indicator animation
	UITickInterval = 100 * time.Millisecond

	// UITicksPerSecond is 1000ms / UITickInterval
	UITicksPerSecond = int(time.Second / UITickInterval)
)

// Layout constants
const (
	HeaderHeight         = 2
	FooterHeight         = 2
	PanelBorderPadding   = 2
	DefaultViewportWidth = 80
	SearchInputWidth     = 32
	SearchCharLimit      = 128
)
