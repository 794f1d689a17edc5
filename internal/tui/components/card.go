package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/tui/theme"
)

// CardHeight is the fixed height of a candidate card, borders included
const CardHeight = 5

// cardTextWidth is the widest line a card shows before truncating
const cardTextWidth = 32

// CardState is how a card relates to the cursor and the pipeline
type CardState struct {
	Cursor  bool // Under the cursor
	Marked  bool // In the bulk selection
	Pending bool // Move not yet confirmed by the service
}

// RenderCard renders a single candidate as a card
//
//	╭──────────────────────────────────╮
//	│◆ {Name}                 syncing… │
//	│ {Title}                          │
//	│ {Location} · ★ {Score} · @{who}  │
//	╰──────────────────────────────────╯
func RenderCard(c models.Candidate, st CardState) string {
	style := CardStyle
	if st.Cursor {
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if st.Marked {
		style = style.
			Background(lipgloss.Color(theme.MarkedBg)).
			BorderBackground(lipgloss.Color(theme.MarkedBg))
	}

	lines := []string{renderCardName(c, st), " " + truncate(c.Title, cardTextWidth), " " + renderCardMeta(c)}
	return style.Render(strings.Join(lines, "\n"))
}

func renderCardName(c models.Candidate, st CardState) string {
	marker := " "
	if st.Marked {
		marker = "◆"
	}

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Normal))
	if st.Pending {
		nameStyle = nameStyle.Foreground(lipgloss.Color(theme.PendingFg))
	}
	name := nameStyle.Render(truncate(c.Name, cardTextWidth-9))

	if !st.Pending {
		return marker + name
	}
	return marker + name + " " + PendingStyle.Render("syncing…")
}

func renderCardMeta(c models.Candidate) string {
	var parts []string
	if c.Location != "" {
		parts = append(parts, c.Location)
	}
	if c.Score != nil {
		parts = append(parts, fmt.Sprintf("★ %.1f", *c.Score))
	}
	if c.AssigneeID != "" {
		parts = append(parts, "@"+string(c.AssigneeID))
	}
	if len(parts) == 0 {
		return SubtleStyle.Italic(true).Render("no details")
	}
	return SubtleStyle.Render(truncate(strings.Join(parts, " · "), cardTextWidth))
}

// truncate shortens s to width cells, ending in an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
