package notify

import (
	"sync"
	"sync/atomic"
	"time"
)

// Feed is a buffered channel of notifications. When the buffer is full
// the oldest pending notification is dropped so producers never block.
type Feed struct {
	ch      chan Notification
	seq     atomic.Uint64
	dropped atomic.Uint64
	mu      sync.Mutex
	now     func() time.Time
}

// NewFeed creates a feed holding up to size undelivered notifications
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 32
	}
	return &Feed{ch: make(chan Notification, size), now: time.Now}
}

// Notify stamps and enqueues n
func (f *Feed) Notify(n Notification) {
	n.ID = f.seq.Add(1)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now()
	}
	if n.Duration == 0 {
		n.Duration = DefaultDuration
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		select {
		case f.ch <- n:
			return
		default:
		}
		select {
		case <-f.ch:
			f.dropped.Add(1)
		default:
		}
	}
}

// C returns the receive side of the feed
func (f *Feed) C() <-chan Notification {
	return f.ch
}

// Dropped returns how many notifications were discarded on overflow
func (f *Feed) Dropped() uint64 {
	return f.dropped.Load()
}

// Drain returns every queued notification without blocking
func (f *Feed) Drain() []Notification {
	var out []Notification
	for {
		select {
		case n := <-f.ch:
			out = append(out, n)
		default:
			return out
		}
	}
}
