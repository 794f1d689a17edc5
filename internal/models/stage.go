package models

import (
	"fmt"
	"strings"
)

// Stage is one named position in the hiring pipeline.
// The zero value is not a valid stage.
type Stage string

const (
	StageApplied            Stage = "Applied"
	StageScreening          Stage = "Screening"
	StagePhoneScreen        Stage = "Phone Screen"
	StageTechnicalInterview Stage = "Technical Interview"
	StageFinalist           Stage = "Finalist"
	StageOffer              Stage = "Offer"
	StageHired              Stage = "Hired"
	StageRejected           Stage = "Rejected"
)

// Stages is the fixed pipeline order. Board columns are laid out in this order.
var Stages = []Stage{
	StageApplied,
	StageScreening,
	StagePhoneScreen,
	StageTechnicalInterview,
	StageFinalist,
	StageOffer,
	StageHired,
	StageRejected,
}

// StageInfo is the display metadata of a stage column
type StageInfo struct {
	Stage Stage
	Title string
	Color string // Hex color code used for the column header
}

var stageInfo = map[Stage]StageInfo{
	StageApplied:            {StageApplied, "Applied", "#6B7280"},
	StageScreening:          {StageScreening, "Screening", "#3B82F6"},
	StagePhoneScreen:        {StagePhoneScreen, "Phone Screen", "#6366F1"},
	StageTechnicalInterview: {StageTechnicalInterview, "Technical Interview", "#A855F7"},
	StageFinalist:           {StageFinalist, "Finalist", "#F59E0B"},
	StageOffer:              {StageOffer, "Offer", "#F97316"},
	StageHired:              {StageHired, "Hired", "#22C55E"},
	StageRejected:           {StageRejected, "Rejected", "#EF4444"},
}

// Info returns the display metadata for the stage
func (s Stage) Info() StageInfo {
	if info, ok := stageInfo[s]; ok {
		return info
	}
	return StageInfo{Stage: s, Title: string(s), Color: "#6B7280"}
}

// Valid reports whether s is one of the pipeline stages
func (s Stage) Valid() bool {
	_, ok := stageInfo[s]
	return ok
}

// Index returns the position of the stage in the pipeline, or -1
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage. ok is false for the last stage.
func (s Stage) Next() (Stage, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(Stages) {
		return "", false
	}
	return Stages[i+1], true
}

// Prev returns the preceding stage. ok is false for the first stage.
func (s Stage) Prev() (Stage, bool) {
	i := s.Index()
	if i <= 0 {
		return "", false
	}
	return Stages[i-1], true
}

func (s Stage) String() string { return string(s) }

// ParseStage resolves user input to a stage.
// Matching ignores case and treats '-', '_' and ' ' as equivalent,
// so "phone-screen" and "PHONE_SCREEN" both resolve to Phone Screen.
func ParseStage(raw string) (Stage, error) {
	want := normalizeStage(raw)
	for _, st := range Stages {
		if normalizeStage(string(st)) == want {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", raw)
}

func normalizeStage(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

// StageNames returns the stage names in pipeline order
func StageNames() []string {
	names := make([]string, len(Stages))
	for i, st := range Stages {
		names[i] = string(st)
	}
	return names
}
