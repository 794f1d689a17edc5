package types

import "github.com/google/uuid"

// Identifier types give each opaque id a domain name. They are strings
// because the persistence service hands out opaque keys, not counters.

// CandidateID identifies a candidate across every stage
type CandidateID string

// JobID identifies the job a candidate applied to
type JobID string

// UserID identifies a recruiter or hiring team member
type UserID string

// InterviewID identifies a scheduled interview
type InterviewID string

// RuleID identifies an automation rule
type RuleID string

// NewCandidateID returns a fresh random candidate id
func NewCandidateID() CandidateID {
	return CandidateID(uuid.NewString())
}

// NewInterviewID returns a fresh random interview id
func NewInterviewID() InterviewID {
	return InterviewID("interview-" + uuid.NewString())
}

func (id CandidateID) String() string { return string(id) }

func (id JobID) String() string { return string(id) }

func (id UserID) String() string { return string(id) }

func (id InterviewID) String() string { return string(id) }

func (id RuleID) String() string { return string(id) }

// CandidateIDs converts raw strings into candidate ids, dropping blanks
func CandidateIDs(raw []string) []CandidateID {
	ids := make([]CandidateID, 0, len(raw))
	for _, r := range raw {
		if r == "" {
			continue
		}
		ids = append(ids, CandidateID(r))
	}
	return ids
}
