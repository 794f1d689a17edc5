package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_StampsAndDelivers(t *testing.T) {
	f := NewFeed(4)
	f.Notify(Notification{Title: "Moved"})
	f.Notify(Notification{Title: "Undo", Duration: UndoDuration})

	got := f.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, DefaultDuration, got[0].Duration)
	assert.False(t, got[0].CreatedAt.IsZero())
	assert.Equal(t, UndoDuration, got[1].Duration)
}

func TestFeed_DropsOldestWhenFull(t *testing.T) {
	f := NewFeed(2)
	f.Notify(Notification{Title: "a"})
	f.Notify(Notification{Title: "b"})
	f.Notify(Notification{Title: "c"})

	got := f.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Title)
	assert.Equal(t, "c", got[1].Title)
	assert.Equal(t, uint64(1), f.Dropped())
}

func TestTray_ExpireAndLatestAction(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	tray := NewTray(3)
	tray.Add(Notification{ID: 1, Title: "info", Duration: AutomationDuration, CreatedAt: start})
	tray.Add(Notification{ID: 2, Title: "moved", Duration: UndoDuration, CreatedAt: start,
		Action: &Action{Kind: ActionUndo, Label: "Undo"}})
	tray.Add(Notification{ID: 3, Title: "failed", Duration: DefaultDuration, CreatedAt: start,
		Action: &Action{Kind: ActionRetry, Label: "Retry", CandidateID: "1"}})

	n, ok := tray.LatestAction(ActionRetry)
	require.True(t, ok)
	assert.Equal(t, uint64(3), n.ID)

	assert.True(t, tray.Expire(start.Add(4*time.Second)))
	assert.Len(t, tray.All(), 2)

	assert.True(t, tray.Expire(start.Add(6*time.Second)))
	_, ok = tray.LatestAction(ActionRetry)
	assert.False(t, ok)
	_, ok = tray.LatestAction(ActionUndo)
	assert.True(t, ok)

	tray.Dismiss(2)
	assert.Empty(t, tray.All())
}

func TestTray_EvictsOldest(t *testing.T) {
	tray := NewTray(2)
	for i := range 3 {
		tray.Add(Notification{ID: uint64(i + 1)})
	}
	all := tray.All()
	require.Len(t, all, 2)
	assert.Equal(t, uint64(2), all[0].ID)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "info", Level(42).String())
}
