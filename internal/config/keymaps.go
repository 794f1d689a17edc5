package config

// KeyMappings defines all configurable board key bindings
type KeyMappings struct {
	// Moves
	MoveRight string `yaml:"move_right"` // Next stage
	MoveLeft  string `yaml:"move_left"`  // Previous stage
	BulkMove  string `yaml:"bulk_move"`  // Selection to the cursor column's next stage
	Undo      string `yaml:"undo"`
	Retry     string `yaml:"retry"`
	Refresh   string `yaml:"refresh"`

	// Selection
	ToggleSelect   string `yaml:"toggle_select"`
	ClearSelection string `yaml:"clear_selection"`

	// Navigation
	PrevColumn    string `yaml:"prev_column"`
	NextColumn    string `yaml:"next_column"`
	PrevCandidate string `yaml:"prev_candidate"`
	NextCandidate string `yaml:"next_candidate"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		MoveRight: ">",
		MoveLeft:  "<",
		BulkMove:  "B",
		Undo:      "u",
		Retry:     "r",
		Refresh:   "R",

		ToggleSelect:   "space",
		ClearSelection: "esc",

		PrevColumn:    "h",
		NextColumn:    "l",
		PrevCandidate: "k",
		NextCandidate: "j",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&k.MoveRight, defaults.MoveRight)
	fill(&k.MoveLeft, defaults.MoveLeft)
	fill(&k.BulkMove, defaults.BulkMove)
	fill(&k.Undo, defaults.Undo)
	fill(&k.Retry, defaults.Retry)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ToggleSelect, defaults.ToggleSelect)
	fill(&k.ClearSelection, defaults.ClearSelection)
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevCandidate, defaults.PrevCandidate)
	fill(&k.NextCandidate, defaults.NextCandidate)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
