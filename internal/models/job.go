package models

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// Job is an open position. Every candidate and board belongs to one job.
type Job struct {
	ID         types.JobID
	Title      string
	Department string
	CreatedAt  time.Time
}

// GetID lets output formatters print the id in quiet mode
func (j *Job) GetID() string {
	return string(j.ID)
}
