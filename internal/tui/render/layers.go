package render

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/components"
)

// RenderHelpLayer renders the help screen as a centered modal layer
func RenderHelpLayer(m *tui.Model) *lipgloss.Layer {
	km := m.Config.KeyMappings
	footer := components.SubtleStyle.Render(km.NextCandidate + "/" + km.PrevCandidate + " scroll · " + km.ShowHelp + " or esc close")
	box := components.HelpBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.HelpState.View(), "", footer))

	x := max((m.UiState.Width()-lipgloss.Width(box))/2, 0)
	y := max((m.UiState.Height()-lipgloss.Height(box))/2, 0)
	return lipgloss.NewLayer(box).X(x).Y(y)
}
