package models

// Column is a board bucket for one stage. Candidates are ordered
// most-recently-moved first.
type Column struct {
	ID         Stage
	Title      string
	Color      string
	Candidates []Candidate
}

// NewColumn returns an empty column with the stage's display metadata
func NewColumn(stage Stage) Column {
	info := stage.Info()
	return Column{
		ID:    stage,
		Title: info.Title,
		Color: info.Color,
	}
}
