package events

import (
	"time"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// ProtocolVersion is bumped whenever the wire format changes
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event announces that candidates on a job's board changed
type Event struct {
	Type        EventType         `json:"type"`
	JobID       types.JobID       `json:"job_id,omitempty"`       // Empty = every job
	CandidateID types.CandidateID `json:"candidate_id,omitempty"` // Set for single-candidate changes
	Timestamp   time.Time         `json:"timestamp"`
	SequenceID  int64             `json:"sequence_id"` // Assigned by the daemon, increasing
}

// SubscribeMessage selects which job's changes a client receives
type SubscribeMessage struct {
	JobID types.JobID `json:"job_id,omitempty"` // Empty = every job
}

// Message is one JSON line on the socket
type Message struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"` // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}

// Matches reports whether an event for jobID should reach a subscriber of sub
func (sub SubscribeMessage) Matches(jobID types.JobID) bool {
	return jobID == "" || sub.JobID == "" || sub.JobID == jobID
}

// BoardChanged builds a change event for one candidate
func BoardChanged(jobID types.JobID, candidateID types.CandidateID) Event {
	return Event{
		Type:        EventBoardChanged,
		JobID:       jobID,
		CandidateID: candidateID,
		Timestamp:   time.Now(),
	}
}
