package models

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// Candidate is a person under consideration for a job.
// Status is the only field this module mutates.
type Candidate struct {
	ID         types.CandidateID
	Name       string
	Email      string
	Phone      string
	Title      string
	Location   string
	Status     Stage
	AssigneeID types.UserID // Empty when unassigned
	JobID      types.JobID
	Score      *float64
	AppliedAt  time.Time
	UpdatedAt  time.Time
}

// GetID lets output formatters print the id in quiet mode
func (c *Candidate) GetID() string {
	return string(c.ID)
}
