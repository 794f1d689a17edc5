package state

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hireboard/internal/notify"
)

// trayLimit is how many notifications stack on screen at once
const trayLimit = 4

// NotificationState manages the notifications currently on screen and
// where they float.
type NotificationState struct {
	tray *notify.Tray
	// windowWidth tracks the current window width for positioning
	windowWidth int
	// windowHeight tracks the current window height for positioning
	windowHeight int
}

// NewNotificationState creates a new NotificationState with no notifications.
func NewNotificationState() *NotificationState {
	return &NotificationState{tray: notify.NewTray(trayLimit)}
}

// Add shows a notification, evicting the oldest when the stack is full.
func (s *NotificationState) Add(n notify.Notification) {
	s.tray.Add(n)
}

// Expire drops notifications whose duration has elapsed.
// Returns true when the stack changed.
func (s *NotificationState) Expire(now time.Time) bool {
	return s.tray.Expire(now)
}

// Dismiss removes one notification.
func (s *NotificationState) Dismiss(id uint64) {
	s.tray.Dismiss(id)
}

// LatestAction returns the newest notification offering an action of kind.
func (s *NotificationState) LatestAction(kind notify.ActionKind) (notify.Notification, bool) {
	return s.tray.LatestAction(kind)
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.tray.Clear()
}

// All returns all current notifications, oldest first.
func (s *NotificationState) All() []notify.Notification {
	return s.tray.All()
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.tray.All()) > 0
}

// SetWindowSize updates the window dimensions for positioning calculations.
func (s *NotificationState) SetWindowSize(width, height int) {
	s.windowWidth = width
	s.windowHeight = height
}

// GetLayers creates floating layers for all active notifications.
// Notifications are stacked vertically in the top-right corner of the
// screen, newest on top.
func (s *NotificationState) GetLayers(renderFunc func(notify.Notification) string) []*lipgloss.Layer {
	layers := []*lipgloss.Layer{}

	// If window dimensions not set, can't position properly
	if s.windowWidth == 0 {
		return layers
	}

	all := s.tray.All()
	row := 0
	for i := len(all) - 1; i >= 0; i-- {
		view := renderFunc(all[i])
		width := lipgloss.Width(view)
		height := lipgloss.Height(view)

		if row+height >= s.windowHeight {
			// Don't render notifications that would go off screen
			break
		}

		col := max(s.windowWidth-width-1, 0) // 1 char padding from right edge
		layers = append(layers, lipgloss.NewLayer(view).X(col).Y(row))
		row += height + 1
	}

	return layers
}
