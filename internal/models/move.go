package models

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// MoveReason records why a transition was attempted
type MoveReason string

const (
	ReasonDrag   MoveReason = "drag_drop"
	ReasonManual MoveReason = "manual_move"
	ReasonUndo   MoveReason = "undo"
	ReasonBulk   MoveReason = "bulk"
	ReasonRetry  MoveReason = "retry"
)

// MoveRecord is one committed transition in the move log
type MoveRecord struct {
	ID             int64             `json:"id"`
	CandidateID    types.CandidateID `json:"candidateId"`
	From           Stage             `json:"from"`
	To             Stage             `json:"to"`
	Reason         MoveReason        `json:"reason"`
	MovedBy        types.UserID      `json:"movedBy"`
	TriggeredRules []types.RuleID    `json:"triggeredRules"`
	At             time.Time         `json:"at"`
}

// MoveRequest is sent to the persistence service. From is the stage the
// caller believes the candidate occupies; a mismatch is rejected.
type MoveRequest struct {
	CandidateID        types.CandidateID
	From               Stage
	To                 Stage
	Reason             MoveReason
	MovedBy            types.UserID
	SuppressAutomation bool
}

// MoveResult is the committed outcome of a single move
type MoveResult struct {
	CandidateID    types.CandidateID `json:"candidateId"`
	From           Stage             `json:"from"`
	To             Stage             `json:"to"`
	Timestamp      time.Time         `json:"timestamp"`
	TriggeredRules []types.RuleID    `json:"triggeredRules"`
}

// BulkMoveRequest applies one destination stage to many candidates
type BulkMoveRequest struct {
	CandidateIDs []types.CandidateID
	To           Stage
	MovedBy      types.UserID
}

// BulkSuccess is one committed item of a bulk move
type BulkSuccess struct {
	CandidateID types.CandidateID `json:"candidateId"`
	Status      Stage             `json:"status"`
}

// BulkFailure is one rejected item of a bulk move
type BulkFailure struct {
	CandidateID types.CandidateID `json:"candidateId"`
	Error       string            `json:"error"`
}

// BulkMoveResult is the per-id outcome of a bulk move
type BulkMoveResult struct {
	Success []BulkSuccess `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// BulkOutcome summarizes a bulk result
type BulkOutcome int

const (
	BulkFullSuccess BulkOutcome = iota
	BulkPartialSuccess
	BulkFullFailure
)

// Partial reports whether some items failed while others succeeded
func (r *BulkMoveResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Success) > 0
}

// Outcome classifies the result. An empty request counts as full success.
func (r *BulkMoveResult) Outcome() BulkOutcome {
	switch {
	case len(r.Failed) == 0:
		return BulkFullSuccess
	case len(r.Success) == 0:
		return BulkFullFailure
	default:
		return BulkPartialSuccess
	}
}

// SucceededIDs returns the ids that were committed, in result order
func (r *BulkMoveResult) SucceededIDs() []types.CandidateID {
	ids := make([]types.CandidateID, len(r.Success))
	for i, s := range r.Success {
		ids[i] = s.CandidateID
	}
	return ids
}

// FailedIDs returns the ids that were rejected, in result order
func (r *BulkMoveResult) FailedIDs() []types.CandidateID {
	ids := make([]types.CandidateID, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.CandidateID
	}
	return ids
}

// UndoEntry is the single retained reversible move
type UndoEntry struct {
	CandidateID types.CandidateID
	From        Stage
	To          Stage
	CreatedAt   time.Time
}
