package cli

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func Test_RenderHelp(t *testing.T) {
	result := ansi.Strip(renderHelp())

	assert.Contains(t, result, "Usage:")
	assert.Contains(t, result, "Examples:")

	for _, l := range usageLines {
		assert.Contains(t, result, l.command)
		assert.Contains(t, result, l.desc)
	}
}

func Test_RenderLines_AlignsDescriptions(t *testing.T) {
	lines := []usageLine{{"a", "first"}, {"abcdef", "second"}}

	rows := ansi.Strip(renderLines(lines, commandName))

	assert.Contains(t, rows, "  a         first")
	assert.Contains(t, rows, "  abcdef    second")
}
