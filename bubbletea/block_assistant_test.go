package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/execai"
	bt "github.com/fwojciec/execai/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantMessageBlock_View(t *testing.T) {
	t.Parallel()

	theme := execai.DefaultTheme()
	styles := bt.NewStyles(theme)

	t.Run("renders label and markdown", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantMessageBlock(execai.Message{
			ID:      "1",
			Role:    execai.RoleAssistant,
			Content: "## Priorities\n\n- **Close** the round",
		}, theme, styles)

		view := block.View(80)
		lines := strings.Split(view, "\n")
		assert.Equal(t, bt.AssistantLabel, strings.TrimSpace(lines[0]))
		assert.Contains(t, view, "Priorities")
		assert.Contains(t, view, "• Close the round")
		assert.NotContains(t, view, "**")
		assert.NotContains(t, view, "Sources")
	})

	t.Run("lists sources with host", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantMessageBlock(execai.Message{
			ID:      "1",
			Role:    execai.RoleAssistant,
			Content: "Comps attached.",
			Sources: []execai.Source{
				{Title: "PitchBook", URI: "https://pitchbook.example/comps"},
				{Title: "Crunchbase", URI: "https://www.crunchbase.example/org/acme"},
			},
		}, theme, styles)

		view := block.View(80)
		assert.Contains(t, view, "Sources")
		assert.Contains(t, view, "[1] PitchBook · pitchbook.example")
		assert.Contains(t, view, "[2] Crunchbase · www.crunchbase.example")
	})

	t.Run("truncates long source titles to width", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantMessageBlock(execai.Message{
			ID:      "1",
			Role:    execai.RoleAssistant,
			Content: "See below.",
			Sources: []execai.Source{
				{Title: strings.Repeat("Quarterly market report ", 5), URI: "https://news.example/a"},
			},
		}, theme, styles)

		view := block.View(30)
		lines := strings.Split(view, "\n")
		last := lines[len(lines)-1]
		require.True(t, strings.HasPrefix(last, "[1] Quarterly"), last)
		assert.LessOrEqual(t, lipgloss.Width(last), 30)
		assert.True(t, strings.HasSuffix(last, "…"), last)
	})

	t.Run("view is stable across calls", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantMessageBlock(execai.Message{
			ID: "1", Role: execai.RoleAssistant, Content: "Same every time.",
		}, theme, styles)
		assert.Equal(t, block.View(50), block.View(50))
	})
}
