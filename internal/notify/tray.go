package notify

import "time"

// Tray is the set of notifications currently on screen.
// It is owned by a single goroutine (the view loop) and is not locked.
type Tray struct {
	items []Notification
	limit int
}

// NewTray creates a tray that keeps at most limit notifications
func NewTray(limit int) *Tray {
	if limit <= 0 {
		limit = 4
	}
	return &Tray{limit: limit}
}

// Add shows n, evicting the oldest when the tray is full
func (t *Tray) Add(n Notification) {
	t.items = append(t.items, n)
	if len(t.items) > t.limit {
		t.items = t.items[len(t.items)-t.limit:]
	}
}

// Expire removes notifications whose duration has elapsed at now.
// It reports whether anything was removed.
func (t *Tray) Expire(now time.Time) bool {
	kept := t.items[:0]
	for _, n := range t.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(kept) != len(t.items)
	t.items = kept
	return removed
}

// Dismiss removes the notification with id
func (t *Tray) Dismiss(id uint64) {
	for i, n := range t.items {
		if n.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// LatestAction returns the newest notification offering an action of kind
func (t *Tray) LatestAction(kind ActionKind) (Notification, bool) {
	for i := len(t.items) - 1; i >= 0; i-- {
		if a := t.items[i].Action; a != nil && a.Kind == kind {
			return t.items[i], true
		}
	}
	return Notification{}, false
}

// All returns the notifications oldest first
func (t *Tray) All() []Notification {
	return append([]Notification(nil), t.items...)
}

// Clear removes every notification
func (t *Tray) Clear() {
	t.items = nil
}
