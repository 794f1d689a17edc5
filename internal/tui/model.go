// Package tui is the interactive pipeline board. The model lives here;
// key handling is in handlers, drawing in render, and core ties them
// into a tea.Model.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/app"
	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/pipeline"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/tui/components"
	"github.com/thenoetrevino/hireboard/internal/tui/state"
)

// feedSize bounds notifications waiting for the view loop
const feedSize = 64

// Model represents the application state for the TUI
type Model struct {
	Ctx     context.Context
	Config  *config.Config
	Session *pipeline.Session
	Feed    *notify.Feed
	JobID   types.JobID

	// EventChan delivers daemon board changes; nil without a daemon
	EventChan <-chan events.Event

	UiState           *state.UIState
	NotificationState *state.NotificationState
	ConnectionState   *state.ConnectionState
	HelpState         *state.HelpState
}

// InitialModel creates a model with a fresh session for jobID. The board
// is empty until the first BoardLoadedMsg.
func InitialModel(ctx context.Context, a *app.App, jobID types.JobID, eventChan <-chan events.Event) Model {
	cfg := a.Config()
	components.InitStyles(cfg.ColorScheme)

	feed := notify.NewFeed(feedSize)
	status := state.Offline
	if eventChan != nil {
		status = state.Connected
	} else if derr := a.DaemonError(); derr != nil {
		feed.Notify(notify.Notification{Level: notify.LevelInfo, Title: "Live updates off", Message: derr.Error()})
	}

	return Model{
		Ctx:               ctx,
		Config:            cfg,
		Session:           a.NewSession(jobID, feed),
		Feed:              feed,
		JobID:             jobID,
		EventChan:         eventChan,
		UiState:           state.NewUIState(),
		NotificationState: state.NewNotificationState(),
		ConnectionState:   state.NewConnectionState(status),
		HelpState:         state.NewHelpState(),
	}
}

// Init loads the board and starts the background listeners
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadBoard(m.Ctx, m.Session),
		WaitForNotification(m.Ctx, m.Feed),
		Tick(),
		SubscribeToEvents(&m),
	)
}

// Notify shows a message raised by the view itself (edge of the board,
// nothing to undo) through the same feed as session notifications.
func (m *Model) Notify(level notify.Level, title, message string) {
	m.Feed.Notify(notify.Notification{Level: level, Title: title, Message: message})
}

// BoardLabel names the board in the header and status bar
func (m *Model) BoardLabel() string {
	if m.JobID == "" {
		return "all jobs"
	}
	return string(m.JobID)
}

// Columns returns the current board columns in pipeline order
func (m *Model) Columns() []models.Column {
	return m.Session.Board().Columns()
}

// CurrentColumn returns the column under the cursor
func (m *Model) CurrentColumn() (models.Column, bool) {
	cols := m.Columns()
	idx := m.UiState.SelectedColumn()
	if idx >= len(cols) {
		return models.Column{}, false
	}
	return cols[idx], true
}

// CurrentCandidate returns the candidate under the cursor
func (m *Model) CurrentCandidate() (models.Candidate, bool) {
	col, ok := m.CurrentColumn()
	if !ok {
		return models.Candidate{}, false
	}
	row := m.UiState.SelectedRow()
	if row >= len(col.Candidates) {
		return models.Candidate{}, false
	}
	return col.Candidates[row], true
}

// PendingIDs returns the candidates with a move awaiting the service
func (m *Model) PendingIDs() map[types.CandidateID]bool {
	pending := m.Session.Pending()
	ids := make(map[types.CandidateID]bool, len(pending))
	for _, h := range pending {
		ids[h.CandidateID] = true
	}
	return ids
}

// ClampSelection keeps the cursor on the board after it changed under it
func (m *Model) ClampSelection() {
	cols := m.Columns()
	if len(cols) == 0 {
		m.UiState.SetSelectedColumn(0)
		m.UiState.SetSelectedRow(0)
		return
	}
	colIdx := min(m.UiState.SelectedColumn(), len(cols)-1)
	m.UiState.SetSelectedColumn(colIdx)
	m.UiState.SetSelectedRow(min(m.UiState.SelectedRow(), max(len(cols[colIdx].Candidates)-1, 0)))
	m.EnsureCursorVisible()
}

// FollowCandidate puts the cursor on id wherever it now sits
func (m *Model) FollowCandidate(id types.CandidateID) {
	stage, pos, _, ok := m.Session.Board().Locate(id)
	if !ok {
		m.ClampSelection()
		return
	}
	for i, col := range m.Columns() {
		if col.ID == stage {
			m.UiState.SetSelectedColumn(i)
			m.UiState.SetSelectedRow(pos)
			break
		}
	}
	m.EnsureCursorVisible()
}

// EnsureCursorVisible scrolls the board and the cursor column to the cursor
func (m *Model) EnsureCursorVisible() {
	m.UiState.EnsureSelectionVisible(m.UiState.SelectedColumn())
	if col, ok := m.CurrentColumn(); ok {
		visible := components.VisibleCards(m.UiState.ContentHeight())
		m.UiState.EnsureRowVisible(col.ID, m.UiState.SelectedRow(), visible)
	}
}
