// Package notify carries user-facing outcome messages from the pipeline
// session to whatever presents them.
package notify

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// Level is the severity of a notification
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ActionKind is the follow-up a notification offers
type ActionKind int

const (
	ActionUndo ActionKind = iota + 1
	ActionRetry
)

// Action is an affordance attached to a notification.
// For ActionRetry it carries the exact move to re-attempt.
type Action struct {
	Kind        ActionKind
	Label       string
	CandidateID types.CandidateID
	To          models.Stage
	Reason      models.MoveReason
}

// Display durations
const (
	DefaultDuration    = 5 * time.Second
	UndoDuration       = 7 * time.Second
	AutomationDuration = 3 * time.Second
)

// Notification is one message shown to the user
type Notification struct {
	ID        uint64
	Level     Level
	Title     string
	Message   string
	Action    *Action
	Duration  time.Duration
	CreatedAt time.Time
}

// Expired reports whether the notification has outlived its duration at now
func (n Notification) Expired(now time.Time) bool {
	return n.Duration > 0 && now.Sub(n.CreatedAt) >= n.Duration
}

// Notifier receives notifications
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification
var Discard Notifier = NotifierFunc(func(Notification) {})
