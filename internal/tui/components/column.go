package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/tui/theme"
)

// columnOverhead is border (2) + header (1) + top indicator (1) + bottom indicator (1)
const columnOverhead = 5

// VisibleCards returns how many cards fit in a column of the given height
func VisibleCards(height int) int {
	return max((height-columnOverhead)/CardHeight, 1)
}

// ColumnProps describes one column to render
type ColumnProps struct {
	Column       models.Column
	Selected     bool // Cursor is in this column
	CursorRow    int
	Height       int // Total height; 0 for auto
	ScrollOffset int
	Marked       func(types.CandidateID) bool
	Pending      map[types.CandidateID]bool
}

// RenderColumn renders a complete column with its title and cards
//
// Layout:
//
//	{Stage} ({count})
//	▲ more above (if scrolled down)
//	{Card 1}
//	{Card 2}
//	...
//	▼ more below (if more cards below)
func RenderColumn(p ColumnProps) string {
	cards := p.Column.Candidates
	headerStyle := TitleStyle.Foreground(lipgloss.Color(p.Column.Color))
	content := headerStyle.Render(fmt.Sprintf("%s (%d)", p.Column.Title, len(cards))) + "\n"

	if len(cards) == 0 {
		content += SubtleStyle.Italic(true).Padding(1, 0).Render("No candidates")
	} else {
		maxVisible := VisibleCards(p.Height)
		offset := min(max(p.ScrollOffset, 0), len(cards)-1)

		if offset > 0 {
			content += IndicatorStyle.Render("▲ more above") + "\n"
		} else {
			content += "\n" // Keep spacing stable
		}

		end := min(offset+maxVisible, len(cards))
		for i, c := range cards[offset:end] {
			content += RenderCard(c, CardState{
				Cursor:  p.Selected && offset+i == p.CursorRow,
				Marked:  p.Marked != nil && p.Marked(c.ID),
				Pending: p.Pending[c.ID],
			}) + "\n"
		}
		content = strings.TrimSuffix(content, "\n")

		// Pad so the bottom indicator sits on the last line
		used := 2 + (end-offset)*CardHeight
		hasMore := end < len(cards)
		indicatorLines := 0
		if hasMore {
			indicatorLines = 2
		}
		if remaining := p.Height - 2 - used - indicatorLines; p.Height > 0 && remaining > 0 {
			content += strings.Repeat("\n", remaining)
		}
		if hasMore {
			content += "\n" + IndicatorStyle.Render("▼ more below")
		}
	}

	style := ColumnStyle
	if p.Selected {
		style = style.BorderForeground(lipgloss.Color(theme.Highlight))
	}
	if p.Height > 0 {
		style = style.Height(p.Height)
	}
	return style.Render(content)
}
