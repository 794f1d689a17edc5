package handlers

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/pipeline"
	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/state"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// HandleNormalMode dispatches keyboard input on the board.
func HandleNormalMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	km := m.Config.KeyMappings

	switch msg.String() {
	case km.Quit:
		return tea.Quit
	case km.ShowHelp:
		openHelp(m)
		m.UiState.SetMode(state.HelpMode)
		return nil

	case km.PrevColumn, "left":
		return handleNavigateLeft(m)
	case km.NextColumn, "right":
		return handleNavigateRight(m)
	case km.PrevCandidate, "up":
		return handleNavigateUp(m)
	case km.NextCandidate, "down":
		return handleNavigateDown(m)

	case km.MoveRight:
		return handleMove(m, true)
	case km.MoveLeft:
		return handleMove(m, false)
	case km.Undo:
		return handleUndo(m)
	case km.Retry:
		return handleRetry(m)
	case km.Refresh:
		return tui.LoadBoard(m.Ctx, m.Session)

	case km.ToggleSelect:
		return handleToggleSelect(m)
	case km.ClearSelection:
		m.Session.ClearSelection()
		return nil
	case km.BulkMove:
		return handleBulkMove(m)
	}
	return nil
}

func handleNavigateLeft(m *tui.Model) tea.Cmd {
	if m.UiState.SelectedColumn() == 0 {
		m.Notify(notify.LevelInfo, "Already at the first stage", "")
		return nil
	}
	m.UiState.SetSelectedColumn(m.UiState.SelectedColumn() - 1)
	m.ClampSelection()
	return nil
}

func handleNavigateRight(m *tui.Model) tea.Cmd {
	if m.UiState.SelectedColumn() >= len(m.Columns())-1 {
		m.Notify(notify.LevelInfo, "Already at the last stage", "")
		return nil
	}
	m.UiState.SetSelectedColumn(m.UiState.SelectedColumn() + 1)
	m.ClampSelection()
	return nil
}

func handleNavigateUp(m *tui.Model) tea.Cmd {
	if m.UiState.SelectedRow() > 0 {
		m.UiState.SetSelectedRow(m.UiState.SelectedRow() - 1)
		m.EnsureCursorVisible()
	}
	return nil
}

func handleNavigateDown(m *tui.Model) tea.Cmd {
	col, ok := m.CurrentColumn()
	if ok && m.UiState.SelectedRow() < len(col.Candidates)-1 {
		m.UiState.SetSelectedRow(m.UiState.SelectedRow() + 1)
		m.EnsureCursorVisible()
	}
	return nil
}

// handleMove moves the candidate under the cursor one stage. The board
// changes immediately and the cursor follows the card.
func handleMove(m *tui.Model, forward bool) tea.Cmd {
	c, ok := m.CurrentCandidate()
	if !ok {
		return nil
	}

	dest, ok := c.Status.Next()
	edge := "last"
	if !forward {
		dest, ok = c.Status.Prev()
		edge = "first"
	}
	if !ok {
		m.Notify(notify.LevelInfo, fmt.Sprintf("%s is already in the %s stage", c.Name, edge), "")
		return nil
	}

	ticket, err := m.Session.RequestMove(m.Ctx, c.ID, dest, models.ReasonManual)
	if err != nil {
		// The session already reported it
		return nil
	}
	m.FollowCandidate(c.ID)
	return tui.AwaitMove(m.Ctx, ticket)
}

func handleUndo(m *tui.Model) tea.Cmd {
	entry, _ := m.Session.Ledger().Peek()
	ticket, err := m.Session.RequestUndo(m.Ctx)
	if errors.Is(err, pipeline.ErrNothingToUndo) {
		m.Notify(notify.LevelInfo, "Nothing to undo", "")
		return nil
	}
	if err != nil {
		return nil
	}
	if n, ok := m.NotificationState.LatestAction(notify.ActionUndo); ok {
		m.NotificationState.Dismiss(n.ID)
	}
	m.FollowCandidate(entry.CandidateID)
	return tui.AwaitMove(m.Ctx, ticket)
}

func handleRetry(m *tui.Model) tea.Cmd {
	n, ok := m.NotificationState.LatestAction(notify.ActionRetry)
	if !ok {
		m.Notify(notify.LevelInfo, "Nothing to retry", "")
		return nil
	}
	m.NotificationState.Dismiss(n.ID)

	ticket, err := m.Session.Retry(m.Ctx, *n.Action)
	if err != nil {
		return nil
	}
	m.FollowCandidate(n.Action.CandidateID)
	return tui.AwaitMove(m.Ctx, ticket)
}

func handleToggleSelect(m *tui.Model) tea.Cmd {
	c, ok := m.CurrentCandidate()
	if !ok {
		return nil
	}
	m.Session.Toggle(c.ID)
	// Step down so a run of cards can be marked with repeated presses
	return handleNavigateDown(m)
}

// handleBulkMove sends the selection to the stage after the cursor column
func handleBulkMove(m *tui.Model) tea.Cmd {
	if m.Session.Selection().Len() == 0 {
		m.Notify(notify.LevelInfo, "Nothing selected", "Mark candidates with "+m.Config.KeyMappings.ToggleSelect+" first")
		return nil
	}
	col, ok := m.CurrentColumn()
	if !ok {
		return nil
	}
	dest, ok := col.ID.Next()
	if !ok {
		m.Notify(notify.LevelWarning, "No stage after "+col.Title, "Move the cursor to an earlier column")
		return nil
	}

	ticket, err := m.Session.RequestBulkMove(m.Ctx, dest)
	if err != nil {
		m.Notify(notify.LevelError, "Bulk move failed", err.Error())
		return nil
	}
	m.ClampSelection()
	return tui.AwaitBulk(m.Ctx, ticket)
}
