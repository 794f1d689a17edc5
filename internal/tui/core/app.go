// Package core wires the board model, handlers and renderer into a
// Bubble Tea program.
package core

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/app"
	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/handlers"
	"github.com/thenoetrevino/hireboard/internal/tui/render"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
type App struct {
	model *tui.Model
}

// New creates a new App with an initialized Model.
func New(ctx context.Context, a *app.App, jobID types.JobID, eventChan <-chan events.Event) *App {
	model := tui.InitialModel(ctx, a, jobID, eventChan)
	return &App{model: &model}
}

// Wrap builds an App around an existing model
func Wrap(m *tui.Model) *App {
	return &App{model: m}
}

// Init initializes the Bubble Tea application.
func (a *App) Init() tea.Cmd {
	return a.model.Init()
}

// Update handles all messages and updates the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, handlers.Update(a.model, msg)
}

// View renders the current state of the application.
func (a *App) View() tea.View {
	return render.View(a.model)
}

// GetModel returns the underlying Model.
// This is primarily useful for testing purposes.
func (a *App) GetModel() *tui.Model {
	return a.model
}

// Run shows the board until the user quits or ctx ends. In-flight moves
// are allowed to resolve before it returns.
func Run(ctx context.Context, a *app.App, jobID types.JobID, eventChan <-chan events.Event) error {
	board := New(ctx, a, jobID, eventChan)
	_, err := tea.NewProgram(board, tea.WithContext(ctx)).Run()
	board.model.Session.Wait()
	return err
}
