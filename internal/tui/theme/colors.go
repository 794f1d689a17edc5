package theme

import "github.com/thenoetrevino/hireboard/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	ColumnBorder   string
	CardBorder     string
	SelectedBorder string
	MarkedBg       string
	PendingFg      string
	Title          string
	Subtle         string
	Normal         string
	InfoFg         string
	SuccessFg      string
	WarningFg      string
	ErrorFg        string
)

// Init initializes the theme colors from the given color scheme
func Init(scheme colors.ColorScheme) {
	scheme.ApplyDefaults()
	Highlight = scheme.Accent
	ColumnBorder = scheme.ColumnBorder
	CardBorder = scheme.CardBorder
	SelectedBorder = scheme.SelectedBorder
	MarkedBg = scheme.MarkedBg
	PendingFg = scheme.PendingFg
	Title = scheme.Title
	Subtle = scheme.Subtle
	Normal = scheme.Normal
	InfoFg = scheme.InfoFg
	SuccessFg = scheme.SuccessFg
	WarningFg = scheme.WarningFg
	ErrorFg = scheme.ErrorFg
}
