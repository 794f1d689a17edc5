package pipeline

import "errors"

var (
	// ErrCandidateNotFound is returned when a candidate is not on the board
	ErrCandidateNotFound = errors.New("candidate not found on board")
	// ErrUnknownStage is returned for a destination that is not a pipeline stage
	ErrUnknownStage = errors.New("unknown pipeline stage")
	// ErrEmptySelection is returned when a bulk move has nothing selected
	ErrEmptySelection = errors.New("no candidates selected")
	// ErrNothingToUndo is returned when the undo ledger is empty
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrUnknownHandle is returned when a handle was already resolved
	ErrUnknownHandle = errors.New("move already resolved")
)
