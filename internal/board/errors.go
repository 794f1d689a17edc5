package board

import "errors"

var (
	// ErrCandidateNotFound means the candidate is absent from every column
	ErrCandidateNotFound = errors.New("candidate not found on board")

	// ErrUnknownColumn means a transform named a stage the board has no column for
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateCandidate means a candidate id appears more than once
	ErrDuplicateCandidate = errors.New("candidate appears in more than one place")

	// ErrStatusMismatch means a candidate's status disagrees with its column
	ErrStatusMismatch = errors.New("candidate status does not match its column")
)
