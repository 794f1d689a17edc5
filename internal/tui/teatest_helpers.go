package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/app"
	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/database"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/testutil"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// SetupTestModel creates a loaded model for job-1 over an in-memory
// database. Candidates 1, 2 and 3 start in Applied, 4 in Screening.
// The terminal is 200x60.
func SetupTestModel(t *testing.T, opts ...app.Option) *Model {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDB(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Failed to init database: %v", err)
	}
	a := app.New(db, config.Default(), opts...)
	t.Cleanup(func() { _ = a.Close() })

	testutil.SeedJob(t, a.Repo(), "job-1", models.StageApplied, "1", "2", "3")
	testutil.SeedJob(t, a.Repo(), "job-1", models.StageScreening, "4")

	m := InitialModel(ctx, a, "job-1", nil)
	if err := m.Session.Refresh(ctx); err != nil {
		t.Fatalf("Failed to load board: %v", err)
	}
	m.UiState.SetWidth(200)
	m.UiState.SetHeight(60)
	m.NotificationState.SetWindowSize(200, 60)
	return &m
}

// Key builds a key press the way the terminal reports it
func Key(s string) tea.KeyPressMsg {
	switch s {
	case "space":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "left":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft})
	case "right":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	case "up":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
	case "down":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
	case "ctrl+c":
		return tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl})
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Code: r, Text: s})
}

// DrainNotifications moves every queued feed notification onto the screen
// and returns them
func DrainNotifications(m *Model) []string {
	var titles []string
	for _, n := range m.Feed.Drain() {
		m.NotificationState.Add(n)
		titles = append(titles, n.Title)
	}
	return titles
}

// StageOf returns where the board shows a candidate
func StageOf(t *testing.T, m *Model, id types.CandidateID) models.Stage {
	t.Helper()
	stage, err := m.Session.Board().StageOf(id)
	if err != nil {
		t.Fatalf("candidate %s not on board: %v", id, err)
	}
	return stage
}
