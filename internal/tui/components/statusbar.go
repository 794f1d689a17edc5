package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// StatusBarProps is what the status bar reports
type StatusBarProps struct {
	Width      int
	Board      string // Job id or "all jobs"
	Selected   int
	Pending    int
	UndoLeft   time.Duration // Zero when there is nothing to undo
	UndoKey    string
	HelpKey    string
	Connection string
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: board, selection and in-flight counts
// Right side: undo countdown, connection and "? help"
func RenderStatusBar(props StatusBarProps) string {
	left := []string{"hireboard · " + props.Board}
	if props.Selected > 0 {
		left = append(left, fmt.Sprintf("%d selected", props.Selected))
	}
	if props.Pending > 0 {
		left = append(left, fmt.Sprintf("%d syncing", props.Pending))
	}

	var right []string
	if props.UndoLeft > 0 {
		secs := int((props.UndoLeft + time.Second - 1) / time.Second)
		right = append(right, fmt.Sprintf("%s undo (%ds)", props.UndoKey, secs))
	}
	if props.Connection != "" {
		right = append(right, props.Connection)
	}
	right = append(right, props.HelpKey+" help")

	leftRendered := SubtleStyle.Render(strings.Join(left, " · "))
	rightRendered := SubtleStyle.Render(strings.Join(right, " · "))

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered)
}
