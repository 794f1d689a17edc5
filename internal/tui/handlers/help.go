package handlers

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/components"
	"github.com/thenoetrevino/hireboard/internal/tui/state"
)

// ============================================================================
// HELP MODE HANDLERS
// ============================================================================

// HandleHelpMode handles input in the help screen. Anything that does not
// close it scrolls.
func HandleHelpMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case m.Config.KeyMappings.ShowHelp, m.Config.KeyMappings.Quit, "esc", "enter":
		m.UiState.SetMode(state.NormalMode)
		return nil
	}
	return m.HelpState.Update(msg)
}

// helpSize is the help overlay's text area for the current terminal
func helpSize(m *tui.Model) (width, height int) {
	width = min(max(m.UiState.Width()*3/5, 40), 100)
	height = max(m.UiState.Height()*3/4-4, 5)
	return width, height
}

func openHelp(m *tui.Model) {
	width, height := helpSize(m)
	content := components.RenderHelp(tui.HelpSections(m.Config.KeyMappings), width)
	m.HelpState.Open(content, width, height)
}
