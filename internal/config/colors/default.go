package colors

// Default returns the default color scheme
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		MarkedBg:       "#3A3A3A",
		PendingFg:      "#FFD700",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		SuccessFg: "#5FD75F",
		WarningFg: "#FFD700",
		ErrorFg:   "#FF5F5F",
	}
}
