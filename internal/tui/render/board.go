package render

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/components"
)

// ViewBoard renders the pipeline board: header, visible columns, status bar
func ViewBoard(m *tui.Model) string {
	cols := m.Columns()
	footer := components.RenderStatusBar(statusBarProps(m))
	header := components.TitleStyle.Render("Pipeline · " + m.BoardLabel())

	if len(cols) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", "No stages to show.", "", footer)
	}

	offset := m.UiState.ViewportOffset()
	end := min(offset+m.UiState.ViewportSize(), len(cols))
	height := m.UiState.ContentHeight()
	pending := m.PendingIDs()
	selection := m.Session.Selection()

	rendered := make([]string, 0, end-offset)
	for i, col := range cols[offset:end] {
		idx := offset + i
		rendered = append(rendered, components.RenderColumn(components.ColumnProps{
			Column:       col,
			Selected:     idx == m.UiState.SelectedColumn(),
			CursorRow:    m.UiState.SelectedRow(),
			Height:       height,
			ScrollOffset: m.UiState.RowScrollOffset(col.ID),
			Marked:       selection.Has,
			Pending:      pending,
		}))
	}

	left, right := " ", " "
	if offset > 0 {
		left = components.IndicatorStyle.Render("◀")
	}
	if end < len(cols) {
		right = components.IndicatorStyle.Render("▶")
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", lipgloss.JoinHorizontal(lipgloss.Top, rendered...), " ", right)

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", board)

	// Constrain content to fit terminal height, leaving room for footer
	lines := strings.Split(content, "\n")
	maxLines := max(m.UiState.Height()-1, 1)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n") + "\n" + footer
}

func statusBarProps(m *tui.Model) components.StatusBarProps {
	km := m.Config.KeyMappings
	return components.StatusBarProps{
		Width:      m.UiState.Width(),
		Board:      m.BoardLabel(),
		Selected:   m.Session.Selection().Len(),
		Pending:    len(m.Session.Pending()),
		UndoLeft:   m.Session.Ledger().Remaining(),
		UndoKey:    km.Undo,
		HelpKey:    km.ShowHelp,
		Connection: m.ConnectionState.Status().String(),
	}
}
