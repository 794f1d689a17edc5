package undo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hireboard/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLedger() (*Ledger, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	return NewLedger(DefaultWindow, WithClock(clock.now)), clock
}

func TestConsume_SingleUse(t *testing.T) {
	l, _ := newTestLedger()
	l.Record(models.UndoEntry{CandidateID: "1", From: models.StageApplied, To: models.StageScreening})

	entry, ok := l.Consume()
	require.True(t, ok)
	assert.Equal(t, models.StageApplied, entry.From)
	assert.Equal(t, models.StageScreening, entry.To)

	_, ok = l.Consume()
	assert.False(t, ok, "second consume must return nothing")
}

func TestRecord_Overwrites(t *testing.T) {
	l, _ := newTestLedger()
	l.Record(models.UndoEntry{CandidateID: "1", From: models.StageApplied, To: models.StageScreening})
	l.Record(models.UndoEntry{CandidateID: "2", From: models.StageScreening, To: models.StageFinalist})

	entry, ok := l.Consume()
	require.True(t, ok)
	assert.Equal(t, "2", string(entry.CandidateID))
}

func TestActive_ExpiresButStillConsumable(t *testing.T) {
	l, clock := newTestLedger()
	l.Record(models.UndoEntry{CandidateID: "1", From: models.StageApplied, To: models.StageScreening})

	assert.True(t, l.Active())
	assert.Equal(t, DefaultWindow, l.Remaining())

	clock.advance(3 * time.Second)
	assert.Equal(t, 4*time.Second, l.Remaining())

	clock.advance(5 * time.Second)
	assert.False(t, l.Active())

	_, ok := l.Peek()
	assert.True(t, ok)
	_, ok = l.Consume()
	assert.True(t, ok, "expiry hides the affordance but keeps the entry")
}

func TestNewLedger_DefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultWindow, NewLedger(0).Window())
	assert.False(t, NewLedger(time.Second).Active())
}
