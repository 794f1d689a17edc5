package database

import (
	"errors"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrJobNotFound       = errors.New("job not found")
)

// notFound is the service-level error for a missing candidate.
// It wraps ErrCandidateNotFound so callers can use errors.Is as well.
type notFound struct {
	*models.APIError
}

func (e notFound) Unwrap() []error {
	return []error{e.APIError, ErrCandidateNotFound}
}

func candidateNotFound(id types.CandidateID) error {
	return notFound{models.NewAPIError(models.CodeCandidateNotFound, "Candidate %s not found", id)}
}
