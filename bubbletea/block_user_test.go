package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/execai"
	bt "github.com/fwojciec/execai/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("renders prompt prefix and text", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(execai.DefaultTheme())
		block := bt.NewUserMessageBlock("hello world", styles)
		assert.Contains(t, block.View(80), "> hello world")
	})

	t.Run("pads each line to full width", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(execai.DefaultTheme())
		block := bt.NewUserMessageBlock("test", styles)
		for _, line := range strings.Split(block.View(40), "\n") {
			assert.Equal(t, 40, lipgloss.Width(line))
		}
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(execai.DefaultTheme())
		longText := "short words that keep going and going beyond the viewport width easily"
		view := bt.NewUserMessageBlock(longText, styles).View(30)
		assert.Contains(t, view, "easily")
		assert.Greater(t, len(strings.Split(view, "\n")), 1)
	})
}
