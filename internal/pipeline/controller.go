// Package pipeline applies candidate moves to the board optimistically
// and reconciles them with the persistence service.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thenoetrevino/hireboard/internal/board"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/undo"
)

// errNoop aborts a store update without replacing the snapshot
var errNoop = errors.New("noop")

// Handle is a pending optimistic move. It is resolved exactly once by
// Confirm or Rollback.
type Handle struct {
	CandidateID types.CandidateID
	From        models.Stage
	To          models.Stage
	Reason      models.MoveReason
	StartedAt   time.Time

	seq       uint64
	candidate models.Candidate

	// Where rollback puts the candidate. A failed earlier move for the
	// same candidate hands its own target to the later one.
	restoreTo    models.Stage
	restoreIndex int
}

// Name is the display name of the moved candidate
func (h *Handle) Name() string {
	if h.candidate.Name != "" {
		return h.candidate.Name
	}
	return string(h.CandidateID)
}

// Controller owns the pending moves against one board store
type Controller struct {
	store  *board.Store
	ledger *undo.Ledger
	now    func() time.Time

	mu      sync.Mutex
	seq     uint64
	pending map[uint64]*Handle
	lastSeq map[types.CandidateID]uint64
	// newest confirmed move per candidate
	confirmedSeq map[types.CandidateID]uint64
}

// NewController creates a controller for store. Confirmed single moves are
// recorded in ledger.
func NewController(store *board.Store, ledger *undo.Ledger) *Controller {
	return &Controller{
		store:   store,
		ledger:  ledger,
		now:     time.Now,
		pending:      make(map[uint64]*Handle),
		lastSeq:      make(map[types.CandidateID]uint64),
		confirmedSeq: make(map[types.CandidateID]uint64),
	}
}

// BeginMove applies a move to the board immediately and returns the handle
// to resolve it. The source stage is read from the live board under the
// store lock. A move to the candidate's current stage returns a nil handle
// and nil error.
func (c *Controller) BeginMove(id types.CandidateID, dest models.Stage, reason models.MoveReason) (*Handle, error) {
	if !dest.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, dest)
	}

	var h *Handle
	err := c.store.Update(func(s board.Snapshot) (board.Snapshot, error) {
		from, pos, cand, ok := s.Locate(id)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
		}
		if from == dest {
			return s, errNoop
		}
		h = c.register(cand, from, pos, dest, reason)
		return s.ApplyMove(id, from, dest), nil
	})
	if errors.Is(err, errNoop) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// BeginBulkMove applies a bulk move and returns one handle per candidate
// that actually changed column. Ids that are unknown or already in dest
// get no handle.
func (c *Controller) BeginBulkMove(ids []types.CandidateID, dest models.Stage) ([]*Handle, error) {
	if !dest.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, dest)
	}

	var handles []*Handle
	err := c.store.Update(func(s board.Snapshot) (board.Snapshot, error) {
		seen := make(map[types.CandidateID]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			from, pos, cand, ok := s.Locate(id)
			if !ok || from == dest {
				continue
			}
			handles = append(handles, c.register(cand, from, pos, dest, models.ReasonBulk))
		}
		if len(handles) == 0 {
			return s, errNoop
		}
		return s.ApplyBulkMove(ids, dest), nil
	})
	if err != nil && !errors.Is(err, errNoop) {
		return nil, err
	}
	return handles, nil
}

func (c *Controller) register(cand models.Candidate, from models.Stage, pos int, dest models.Stage, reason models.MoveReason) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	h := &Handle{
		CandidateID:  cand.ID,
		From:         from,
		To:           dest,
		Reason:       reason,
		StartedAt:    c.now(),
		seq:          c.seq,
		candidate:    cand,
		restoreTo:    from,
		restoreIndex: pos,
	}
	c.pending[h.seq] = h
	c.lastSeq[cand.ID] = h.seq
	return h
}

// Confirm resolves h as committed. Single moves are recorded in the undo
// ledger; bulk moves and reversals are not.
func (c *Controller) Confirm(h *Handle) error {
	c.mu.Lock()
	if _, ok := c.pending[h.seq]; !ok {
		c.mu.Unlock()
		return ErrUnknownHandle
	}
	delete(c.pending, h.seq)
	if h.seq > c.confirmedSeq[h.CandidateID] {
		c.confirmedSeq[h.CandidateID] = h.seq
	}
	c.mu.Unlock()

	if c.ledger != nil && h.Reason != models.ReasonUndo && h.Reason != models.ReasonBulk {
		c.ledger.Record(models.UndoEntry{
			CandidateID: h.CandidateID,
			From:        h.From,
			To:          h.To,
			CreatedAt:   c.now(),
		})
	}
	return nil
}

// Rollback resolves h as rejected and puts the candidate back where it
// was before the move. When a later move of the same candidate is still
// pending it inherits h's restore target and the board is left alone.
// A later move that was confirmed also leaves the board alone; later
// moves that were all rolled back do not.
func (c *Controller) Rollback(h *Handle) error {
	return c.store.Update(func(s board.Snapshot) (board.Snapshot, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		if _, ok := c.pending[h.seq]; !ok {
			return s, ErrUnknownHandle
		}
		delete(c.pending, h.seq)

		if c.lastSeq[h.CandidateID] != h.seq {
			if next := c.nextPending(h); next != nil {
				next.restoreTo = h.restoreTo
				next.restoreIndex = h.restoreIndex
				return s, nil
			}
			if c.confirmedSeq[h.CandidateID] > h.seq {
				return s, nil
			}
		}

		_, _, current, ok := s.Locate(h.CandidateID)
		if !ok {
			return s, nil
		}
		return s.Restore(current, h.restoreTo, h.restoreIndex), nil
	})
}

// nextPending finds the earliest pending move of the same candidate begun after h
func (c *Controller) nextPending(h *Handle) *Handle {
	var next *Handle
	for _, p := range c.pending {
		if p.CandidateID != h.CandidateID || p.seq < h.seq {
			continue
		}
		if next == nil || p.seq < next.seq {
			next = p
		}
	}
	return next
}

// Pending returns the unresolved moves in the order they were begun
func (c *Controller) Pending() []*Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *Controller) pendingLocked() []*Handle {
	out := make([]*Handle, 0, len(c.pending))
	for _, h := range c.pending {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Refresh replaces the board with authoritative candidates and re-applies
// every pending move on top, so in-flight optimistic changes stay visible.
// Restore targets are rebased onto the authoritative positions.
func (c *Controller) Refresh(candidates []*models.Candidate) {
	_ = c.store.Update(func(board.Snapshot) (board.Snapshot, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		next := board.FromCandidates(candidates)
		for _, h := range c.pendingLocked() {
			from, pos, _, ok := next.Locate(h.CandidateID)
			if !ok {
				continue
			}
			h.restoreTo = from
			h.restoreIndex = pos
			next = next.ApplyMove(h.CandidateID, from, h.To)
		}
		return next, nil
	})
}
