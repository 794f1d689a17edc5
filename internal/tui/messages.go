package tui

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/pipeline"
)

// BoardLoadedMsg reports a finished refresh
type BoardLoadedMsg struct {
	Err error
}

// NotificationMsg carries one notification off the session feed
type NotificationMsg struct {
	Notification notify.Notification
}

// MoveResolvedMsg is sent when the service answers a single move
type MoveResolvedMsg struct {
	Outcome pipeline.MoveOutcome
}

// BulkResolvedMsg is sent when the service answers a bulk move
type BulkResolvedMsg struct {
	Result *models.BulkMoveResult
}

// TickMsg drives notification expiry and the undo countdown
type TickMsg time.Time

// RefreshMsg is sent when the daemon reports a board change
type RefreshMsg struct {
	Event events.Event
}

// ConnectionLostMsg is sent when the daemon event stream closes
type ConnectionLostMsg struct{}
