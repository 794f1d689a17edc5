package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/handlers"
)

func TestView_Loading(t *testing.T) {
	m := tui.SetupTestModel(t)
	m.UiState.SetWidth(0)

	assert.Equal(t, "Loading...", View(m).Content)
}

func TestView_Board(t *testing.T) {
	m := tui.SetupTestModel(t)
	view := View(m)

	assert.True(t, view.AltScreen)
	for _, want := range []string{
		"Pipeline · job-1",
		"Applied (3)",
		"Screening (1)",
		"Candidate 3",
		"Candidate 4",
		"hireboard · job-1",
		"offline",
		"▶",
	} {
		assert.Contains(t, view.Content, want)
	}
	// Only four columns fit in 200 cells
	assert.NotContains(t, view.Content, "Finalist (0)")
}

func TestView_SelectionAndUndoInStatusBar(t *testing.T) {
	m := tui.SetupTestModel(t)
	handlers.Update(m, tui.Key("space"))

	content := ViewBoard(m)
	assert.Contains(t, content, "1 selected")
	assert.Contains(t, content, "◆")

	cmd := handlers.Update(m, tui.Key(">"))
	cmd()
	assert.Contains(t, ViewBoard(m), "u undo (")
}

func TestView_HelpOverlay(t *testing.T) {
	m := tui.SetupTestModel(t)
	handlers.Update(m, tui.Key("?"))

	content := View(m).Content
	assert.Contains(t, content, "esc close")
	assert.Contains(t, content, "undo the last move")
}

func TestView_NotificationWithAction(t *testing.T) {
	m := tui.SetupTestModel(t)
	m.NotificationState.Add(notify.Notification{
		ID:      1,
		Level:   notify.LevelSuccess,
		Title:   "Candidate moved",
		Message: "Candidate 3 moved to Screening",
		Action:  &notify.Action{Kind: notify.ActionUndo, Label: "Undo"},
	})

	content := View(m).Content
	assert.Contains(t, content, "Candidate moved")
	assert.Contains(t, content, "[u] Undo")
}
