// Package undo keeps the single most recent reversible move.
package undo

import (
	"sync"
	"time"

	"github.com/thenoetrevino/hireboard/internal/models"
)

// DefaultWindow is how long the undo affordance is offered
const DefaultWindow = 7 * time.Second

// Ledger holds at most one entry. Recording overwrites, consuming clears.
// The window only governs whether the affordance is shown; an entry that
// was never overwritten can still be consumed after it elapses.
type Ledger struct {
	mu     sync.Mutex
	entry  *models.UndoEntry
	window time.Duration
	now    func() time.Time
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger creates an empty ledger. A non-positive window uses DefaultWindow.
func NewLedger(window time.Duration, opts ...Option) *Ledger {
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Ledger{window: window, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record replaces any existing entry. A zero CreatedAt is stamped with the clock.
func (l *Ledger) Record(entry models.UndoEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = l.now()
	}
	l.entry = &entry
}

// Consume returns the entry and clears it. ok is false when the ledger is empty.
func (l *Ledger) Consume() (models.UndoEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entry == nil {
		return models.UndoEntry{}, false
	}
	e := *l.entry
	l.entry = nil
	return e, true
}

// Peek returns the entry without clearing it
func (l *Ledger) Peek() (models.UndoEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entry == nil {
		return models.UndoEntry{}, false
	}
	return *l.entry, true
}

// Active reports whether an entry exists and is still inside the window
func (l *Ledger) Active() bool {
	return l.Remaining() > 0
}

// Remaining is the time left on the affordance, zero when inactive
func (l *Ledger) Remaining() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entry == nil {
		return 0
	}
	left := l.window - l.now().Sub(l.entry.CreatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Window returns the configured affordance window
func (l *Ledger) Window() time.Duration {
	return l.window
}
