// Package render implements the View half of the board
package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/notifications"
	"github.com/thenoetrevino/hireboard/internal/tui/state"
)

// View is the main view dispatcher that renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func View(m *tui.Model) tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	// Layer-based rendering: the board is always the base, overlays float on top
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(ViewBoard(m)),
	}
	if m.UiState.Mode() == state.HelpMode {
		layers = append(layers, RenderHelpLayer(m))
	}
	layers = append(layers, m.NotificationState.GetLayers(func(n notify.Notification) string {
		return notifications.Render(n, actionKey(m, n))
	})...)

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

// actionKey is the key that runs a notification's action
func actionKey(m *tui.Model, n notify.Notification) string {
	if n.Action == nil {
		return ""
	}
	switch n.Action.Kind {
	case notify.ActionUndo:
		return m.Config.KeyMappings.Undo
	case notify.ActionRetry:
		return m.Config.KeyMappings.Retry
	}
	return ""
}
