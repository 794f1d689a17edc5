// Package notifications renders notification banners
package notifications

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/tui/theme"
)

// maxWidth keeps long failure messages from covering the board
const maxWidth = 48

// Render renders a notification banner. keyHint, when not empty, is the
// key that triggers the notification's action (e.g. "u" for undo).
func Render(n notify.Notification, keyHint string) string {
	style := styleFor(n.Level)

	title := n.Title
	if title == "" {
		title = style.title
	}
	headerText := style.icon + " " + title

	lines := []string{headerText}
	if n.Message != "" {
		lines = append(lines, n.Message)
	}
	var actionText string
	if n.Action != nil && keyHint != "" {
		actionText = "[" + keyHint + "] " + n.Action.Label
	}

	width := lipgloss.Width(headerText)
	for _, l := range lines[1:] {
		width = max(width, lipgloss.Width(l))
	}
	width = min(max(width, lipgloss.Width(actionText)), maxWidth)

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.color)).
		Bold(true).
		Width(width).
		Render(headerText)

	parts := []string{header}
	if n.Message != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Normal)).
			Width(width).
			Render(n.Message))
	}
	if actionText != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Highlight)).
			Bold(true).
			Render(actionText))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.color)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
