// Package handlers implements the Update half of the board: key input and
// the messages background work sends back.
package handlers

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/tui"
	"github.com/thenoetrevino/hireboard/internal/tui/state"
)

// Update applies msg to the model and returns the follow-up command
func Update(m *tui.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKey(m, msg)

	case tea.WindowSizeMsg:
		m.UiState.SetWidth(msg.Width)
		m.UiState.SetHeight(msg.Height)
		m.NotificationState.SetWindowSize(msg.Width, msg.Height)
		m.UiState.ClampViewport(len(m.Columns()))
		if m.UiState.Mode() == state.HelpMode {
			openHelp(m)
		}
		return nil

	case tui.BoardLoadedMsg:
		if msg.Err != nil {
			m.Notify(notify.LevelError, "Failed to load board", msg.Err.Error())
		}
		m.ClampSelection()
		return nil

	case tui.NotificationMsg:
		m.NotificationState.Add(msg.Notification)
		return tui.WaitForNotification(m.Ctx, m.Feed)

	case tui.MoveResolvedMsg, tui.BulkResolvedMsg:
		// Rollbacks and refreshes may have shortened the cursor column
		m.ClampSelection()
		return nil

	case tui.TickMsg:
		m.NotificationState.Expire(time.Time(msg))
		return tui.Tick()

	case tui.RefreshMsg:
		return tea.Batch(tui.LoadBoard(m.Ctx, m.Session), tui.SubscribeToEvents(m))

	case tui.ConnectionLostMsg:
		m.ConnectionState.SetStatus(state.Disconnected)
		m.Notify(notify.LevelWarning, "Live updates stopped", "Lost the daemon connection; press "+m.Config.KeyMappings.Refresh+" to reload")
		return nil
	}

	if m.UiState.Mode() == state.HelpMode {
		return m.HelpState.Update(msg)
	}
	return nil
}

func handleKey(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.UiState.Mode() {
	case state.HelpMode:
		return HandleHelpMode(m, msg)
	default:
		return HandleNormalMode(m, msg)
	}
}
