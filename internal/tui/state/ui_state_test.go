package state

import (
	"testing"
	"time"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/notify"
)

// TestCalculateViewportSize_ZeroWidth ensures viewport defaults to 1 when terminal width is 0.
// Edge case: Terminal not fully initialized yet.
func TestCalculateViewportSize_ZeroWidth(t *testing.T) {
	state := NewUIState()
	state.SetWidth(0)

	if got := state.ViewportSize(); got != 1 {
		t.Errorf("ViewportSize() with width=0 = %d, want 1", got)
	}
}

// TestCalculateViewportSize_NarrowTerminal ensures at least one column is visible.
func TestCalculateViewportSize_NarrowTerminal(t *testing.T) {
	state := NewUIState()
	state.SetWidth(20)

	if got := state.ViewportSize(); got != 1 {
		t.Errorf("ViewportSize() with width=20 = %d, want 1", got)
	}
}

func TestCalculateViewportSize_Wide(t *testing.T) {
	state := NewUIState()
	state.SetWidth(4 + 3*ColumnWidth)

	if got := state.ViewportSize(); got != 3 {
		t.Errorf("ViewportSize() = %d, want 3", got)
	}
}

// TestEnsureSelectionVisible scrolls the viewport both ways.
func TestEnsureSelectionVisible(t *testing.T) {
	state := NewUIState()
	state.SetWidth(4 + 2*ColumnWidth) // 2 columns

	state.EnsureSelectionVisible(5)
	if got := state.ViewportOffset(); got != 4 {
		t.Errorf("ViewportOffset() after selecting column 5 = %d, want 4", got)
	}

	state.EnsureSelectionVisible(1)
	if got := state.ViewportOffset(); got != 1 {
		t.Errorf("ViewportOffset() after selecting column 1 = %d, want 1", got)
	}
}

// TestClampViewport pulls the viewport back after the terminal grows.
func TestClampViewport(t *testing.T) {
	state := NewUIState()
	state.SetWidth(4 + ColumnWidth)
	state.EnsureSelectionVisible(7)

	state.SetWidth(4 + 4*ColumnWidth)
	state.ClampViewport(len(models.Stages))

	if got := state.ViewportOffset(); got != 4 {
		t.Errorf("ViewportOffset() = %d, want 4", got)
	}
}

func TestContentHeight_Minimum(t *testing.T) {
	state := NewUIState()
	state.SetHeight(3)

	if got := state.ContentHeight(); got != 5 {
		t.Errorf("ContentHeight() = %d, want 5", got)
	}
}

// TestEnsureRowVisible keeps a per-column scroll offset.
func TestEnsureRowVisible(t *testing.T) {
	state := NewUIState()

	state.EnsureRowVisible(models.StageApplied, 6, 3)
	if got := state.RowScrollOffset(models.StageApplied); got != 4 {
		t.Errorf("RowScrollOffset(Applied) = %d, want 4", got)
	}
	if got := state.RowScrollOffset(models.StageOffer); got != 0 {
		t.Errorf("RowScrollOffset(Offer) = %d, want 0", got)
	}

	state.EnsureRowVisible(models.StageApplied, 2, 3)
	if got := state.RowScrollOffset(models.StageApplied); got != 2 {
		t.Errorf("RowScrollOffset(Applied) after scrolling up = %d, want 2", got)
	}
}

func TestSetSelected_NeverNegative(t *testing.T) {
	state := NewUIState()
	state.SetSelectedColumn(-1)
	state.SetSelectedRow(-3)

	if state.SelectedColumn() != 0 || state.SelectedRow() != 0 {
		t.Errorf("selection = (%d, %d), want (0, 0)", state.SelectedColumn(), state.SelectedRow())
	}
}

// TestNotificationState_Layers stacks newest first and stops at the bottom edge.
func TestNotificationState_Layers(t *testing.T) {
	s := NewNotificationState()
	render := func(n notify.Notification) string { return n.Title + "\n" + n.Message }

	if layers := s.GetLayers(render); len(layers) != 0 {
		t.Fatalf("GetLayers() before sizing = %d layers, want 0", len(layers))
	}

	s.SetWindowSize(80, 6)
	s.Add(notify.Notification{ID: 1, Title: "first", Message: "a"})
	s.Add(notify.Notification{ID: 2, Title: "second", Message: "b"})
	s.Add(notify.Notification{ID: 3, Title: "third", Message: "c"})

	// Each banner is 2 lines plus a gap, so only two fit in 6 rows
	if layers := s.GetLayers(render); len(layers) != 2 {
		t.Errorf("GetLayers() = %d layers, want 2", len(layers))
	}
}

func TestNotificationState_ExpireAndAction(t *testing.T) {
	s := NewNotificationState()
	now := time.Now()
	s.Add(notify.Notification{ID: 1, Title: "moved", Duration: time.Second, CreatedAt: now,
		Action: &notify.Action{Kind: notify.ActionUndo}})
	s.Add(notify.Notification{ID: 2, Title: "failed", Duration: time.Minute, CreatedAt: now,
		Action: &notify.Action{Kind: notify.ActionRetry}})

	if _, ok := s.LatestAction(notify.ActionUndo); !ok {
		t.Fatal("LatestAction(undo) not found")
	}
	if !s.Expire(now.Add(2 * time.Second)) {
		t.Fatal("Expire() = false, want true")
	}
	if _, ok := s.LatestAction(notify.ActionUndo); ok {
		t.Error("undo notification survived expiry")
	}

	s.Dismiss(2)
	if s.HasAny() {
		t.Errorf("HasAny() = true after dismissing the last notification")
	}
}
