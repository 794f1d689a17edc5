package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/pipeline"
)

// TickInterval is how often notifications are checked for expiry
const TickInterval = 500 * time.Millisecond

// LoadBoard refreshes the session from the service
func LoadBoard(ctx context.Context, s *pipeline.Session) tea.Cmd {
	return func() tea.Msg {
		return BoardLoadedMsg{Err: s.Refresh(ctx)}
	}
}

// WaitForNotification delivers the next notification from the feed.
// The handler re-arms it after every message.
func WaitForNotification(ctx context.Context, feed *notify.Feed) tea.Cmd {
	return func() tea.Msg {
		select {
		case n, ok := <-feed.C():
			if !ok {
				return nil
			}
			return NotificationMsg{Notification: n}
		case <-ctx.Done():
			return nil
		}
	}
}

// AwaitMove waits for a single move ticket to resolve
func AwaitMove(ctx context.Context, t *pipeline.Ticket[pipeline.MoveOutcome]) tea.Cmd {
	return func() tea.Msg {
		out, err := t.Wait(ctx)
		if err != nil {
			return nil
		}
		return MoveResolvedMsg{Outcome: out}
	}
}

// AwaitBulk waits for a bulk move ticket to resolve
func AwaitBulk(ctx context.Context, t *pipeline.Ticket[*models.BulkMoveResult]) tea.Cmd {
	return func() tea.Msg {
		res, err := t.Wait(ctx)
		if err != nil {
			return nil
		}
		return BulkResolvedMsg{Result: res}
	}
}

// Tick schedules the next TickMsg
func Tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SubscribeToEvents returns a command that listens for events from the daemon
// and sends RefreshMsg when data changes.
// Returns nil if EventChan is not initialized.
func SubscribeToEvents(m *Model) tea.Cmd {
	if m.EventChan == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case event, ok := <-m.EventChan:
			if !ok {
				return ConnectionLostMsg{}
			}
			return RefreshMsg{Event: event}
		case <-m.Ctx.Done():
			return nil
		}
	}
}
