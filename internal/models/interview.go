package models

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// Interview is a scheduled conversation with a candidate
type Interview struct {
	ID           types.InterviewID
	CandidateID  types.CandidateID
	JobID        types.JobID
	StartTime    time.Time
	EndTime      time.Time
	Participants []types.UserID
	Location     string
}

// InterviewRequest asks the persistence service to book an interview
type InterviewRequest struct {
	CandidateID  types.CandidateID
	JobID        types.JobID
	StartTime    time.Time
	EndTime      time.Time
	Participants []types.UserID
	Location     string // Defaults to "Zoom"
}

// DefaultInterviewLocation is used when a request leaves Location empty
const DefaultInterviewLocation = "Zoom"
