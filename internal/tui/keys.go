package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/tui/components"
)

func binding(k, desc string, alt ...string) key.Binding {
	keys := append([]string{k}, alt...)
	label := k
	for _, a := range alt {
		label += " / " + a
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// HelpSections lists the board's bindings as configured
func HelpSections(km config.KeyMappings) []components.HelpSection {
	return []components.HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{
			binding(km.PrevColumn, "previous stage column", "left"),
			binding(km.NextColumn, "next stage column", "right"),
			binding(km.PrevCandidate, "candidate above", "up"),
			binding(km.NextCandidate, "candidate below", "down"),
		}},
		{Title: "Moves", Bindings: []key.Binding{
			binding(km.MoveRight, "advance to the next stage"),
			binding(km.MoveLeft, "send back to the previous stage"),
			binding(km.Undo, "undo the last move"),
			binding(km.Retry, "retry the last failed move"),
			binding(km.Refresh, "reload the board"),
		}},
		{Title: "Selection", Bindings: []key.Binding{
			binding(km.ToggleSelect, "select or unselect the candidate"),
			binding(km.BulkMove, "move the selection one stage past the cursor column"),
			binding(km.ClearSelection, "clear the selection"),
		}},
		{Title: "Other", Bindings: []key.Binding{
			binding(km.ShowHelp, "toggle this help"),
			binding(km.Quit, "quit", "ctrl+c"),
		}},
	}
}
