// Package board holds the in-memory pipeline board: one column per stage,
// each holding the candidates currently in that stage.
package board

import (
	"fmt"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// Snapshot is an immutable view of the board.
// Transforms return a new Snapshot and never modify the receiver, so a
// Snapshot can be shared freely between goroutines. Untouched column
// slices are shared between the old and new snapshot.
type Snapshot struct {
	columns []models.Column
}

// Empty returns a board with one empty column per pipeline stage
func Empty() Snapshot {
	cols := make([]models.Column, len(models.Stages))
	for i, st := range models.Stages {
		cols[i] = models.NewColumn(st)
	}
	return Snapshot{columns: cols}
}

// New builds a snapshot from explicit columns. The slice is copied.
func New(columns []models.Column) Snapshot {
	cols := make([]models.Column, len(columns))
	for i, col := range columns {
		cols[i] = col
		cols[i].Candidates = append([]models.Candidate(nil), col.Candidates...)
	}
	return Snapshot{columns: cols}
}

// FromCandidates projects candidates into stage columns by status.
// Input order is kept inside each column. Candidates with an unknown
// status are dropped.
func FromCandidates(candidates []*models.Candidate) Snapshot {
	s := Empty()
	index := s.columnIndex()
	for _, c := range candidates {
		if c == nil {
			continue
		}
		i, ok := index[c.Status]
		if !ok {
			continue
		}
		s.columns[i].Candidates = append(s.columns[i].Candidates, *c)
	}
	return s
}

// Columns returns a deep copy of the column list
func (s Snapshot) Columns() []models.Column {
	return New(s.columns).columns
}

// Column returns a copy of the column for stage
func (s Snapshot) Column(stage models.Stage) (models.Column, bool) {
	for _, col := range s.columns {
		if col.ID == stage {
			col.Candidates = append([]models.Candidate(nil), col.Candidates...)
			return col, true
		}
	}
	return models.Column{}, false
}

// Len returns the number of candidates on the board
func (s Snapshot) Len() int {
	n := 0
	for _, col := range s.columns {
		n += len(col.Candidates)
	}
	return n
}

// Locate finds the column currently holding the candidate.
func (s Snapshot) Locate(id types.CandidateID) (stage models.Stage, position int, candidate models.Candidate, ok bool) {
	for _, col := range s.columns {
		for i, c := range col.Candidates {
			if c.ID == id {
				return col.ID, i, c, true
			}
		}
	}
	return "", -1, models.Candidate{}, false
}

// StageOf returns the stage of the candidate or ErrCandidateNotFound
func (s Snapshot) StageOf(id types.CandidateID) (models.Stage, error) {
	stage, _, _, ok := s.Locate(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
	}
	return stage, nil
}

// ApplyMove removes the candidate from the source column and prepends it
// to the destination column with its status set to the destination.
// The receiver is returned unchanged when source equals destination, when
// either column is unknown, or when the candidate is not in the source.
func (s Snapshot) ApplyMove(id types.CandidateID, source, dest models.Stage) Snapshot {
	if source == dest {
		return s
	}
	index := s.columnIndex()
	si, ok := index[source]
	if !ok {
		return s
	}
	di, ok := index[dest]
	if !ok {
		return s
	}
	pos := findCandidate(s.columns[si].Candidates, id)
	if pos < 0 {
		return s
	}

	moved := s.columns[si].Candidates[pos]
	moved.Status = dest

	out := s.shallowCopy()
	out.columns[si].Candidates = without(s.columns[si].Candidates, pos)
	out.columns[di].Candidates = prepend(s.columns[di].Candidates, moved)
	return out
}

// ApplyBulkMove moves every listed candidate into dest, wherever it is.
// Moved candidates are placed at the front of dest in the listed order.
// Ids already in dest, unknown ids and repeated ids are left alone.
func (s Snapshot) ApplyBulkMove(ids []types.CandidateID, dest models.Stage) Snapshot {
	index := s.columnIndex()
	di, ok := index[dest]
	if !ok || len(ids) == 0 {
		return s
	}

	wanted := make(map[types.CandidateID]int, len(ids))
	for i, id := range ids {
		if _, seen := wanted[id]; !seen {
			wanted[id] = i
		}
	}

	moved := make([]models.Candidate, len(ids))
	found := make([]bool, len(ids))
	out := s.shallowCopy()
	changed := false

	for ci, col := range s.columns {
		if ci == di {
			continue
		}
		var kept []models.Candidate
		touched := false
		for _, c := range col.Candidates {
			order, ok := wanted[c.ID]
			if !ok {
				kept = append(kept, c)
				continue
			}
			c.Status = dest
			moved[order] = c
			found[order] = true
			touched = true
		}
		if touched {
			out.columns[ci].Candidates = kept
			changed = true
		}
	}
	if !changed {
		return s
	}

	front := make([]models.Candidate, 0, len(ids))
	for i := range moved {
		if found[i] {
			front = append(front, moved[i])
		}
	}
	out.columns[di].Candidates = append(front, s.columns[di].Candidates...)
	return out
}

// Restore puts the candidate back into stage at position, clamped to the
// column length. It is used for rollback so the candidate returns to the
// slot it occupied before an optimistic move. The candidate is removed
// from wherever it currently is first.
func (s Snapshot) Restore(candidate models.Candidate, stage models.Stage, position int) Snapshot {
	index := s.columnIndex()
	di, ok := index[stage]
	if !ok {
		return s
	}
	out := s.shallowCopy()
	if cur, pos, _, found := s.Locate(candidate.ID); found {
		ci := index[cur]
		out.columns[ci].Candidates = without(s.columns[ci].Candidates, pos)
	}

	candidate.Status = stage
	col := out.columns[di].Candidates
	if position < 0 {
		position = 0
	}
	if position > len(col) {
		position = len(col)
	}
	restored := make([]models.Candidate, 0, len(col)+1)
	restored = append(restored, col[:position]...)
	restored = append(restored, candidate)
	restored = append(restored, col[position:]...)
	out.columns[di].Candidates = restored
	return out
}

// Validate checks the partition invariant: every candidate appears in
// exactly one column and its status matches that column. Every column
// must be a pipeline stage.
func (s Snapshot) Validate() error {
	seen := make(map[types.CandidateID]models.Stage)
	for _, col := range s.columns {
		if !col.ID.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, col.ID)
		}
		for _, c := range col.Candidates {
			if prev, dup := seen[c.ID]; dup {
				return fmt.Errorf("%w: %s in %q and %q", ErrDuplicateCandidate, c.ID, prev, col.ID)
			}
			seen[c.ID] = col.ID
			if c.Status != col.ID {
				return fmt.Errorf("%w: %s has status %q in column %q", ErrStatusMismatch, c.ID, c.Status, col.ID)
			}
		}
	}
	return nil
}

func (s Snapshot) columnIndex() map[models.Stage]int {
	index := make(map[models.Stage]int, len(s.columns))
	for i, col := range s.columns {
		index[col.ID] = i
	}
	return index
}

// shallowCopy copies the column headers; candidate slices stay shared
// until a transform replaces them.
func (s Snapshot) shallowCopy() Snapshot {
	cols := make([]models.Column, len(s.columns))
	copy(cols, s.columns)
	return Snapshot{columns: cols}
}

func findCandidate(list []models.Candidate, id types.CandidateID) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func without(list []models.Candidate, pos int) []models.Candidate {
	out := make([]models.Candidate, 0, len(list)-1)
	out = append(out, list[:pos]...)
	return append(out, list[pos+1:]...)
}

func prepend(list []models.Candidate, c models.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(list)+1)
	out = append(out, c)
	return append(out, list...)
}
