package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		input string
		want  Stage
	}{
		{"Applied", StageApplied},
		{"applied", StageApplied},
		{"phone-screen", StagePhoneScreen},
		{"PHONE_SCREEN", StagePhoneScreen},
		{"  technical interview ", StageTechnicalInterview},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStage("archived")
	assert.Error(t, err)
}

func TestStage_NextPrev(t *testing.T) {
	next, ok := StageApplied.Next()
	assert.True(t, ok)
	assert.Equal(t, StageScreening, next)

	_, ok = StageRejected.Next()
	assert.False(t, ok)

	prev, ok := StageOffer.Prev()
	assert.True(t, ok)
	assert.Equal(t, StageFinalist, prev)

	_, ok = StageApplied.Prev()
	assert.False(t, ok)
}

func TestStage_Info(t *testing.T) {
	assert.Equal(t, "#3B82F6", StageScreening.Info().Color)
	assert.True(t, StageHired.Valid())
	assert.False(t, Stage("Archived").Valid())
	assert.Equal(t, "Archived", Stage("Archived").Info().Title)
}

func TestBulkMoveResult_Outcome(t *testing.T) {
	full := &BulkMoveResult{Success: []BulkSuccess{{CandidateID: "1"}}}
	assert.Equal(t, BulkFullSuccess, full.Outcome())
	assert.False(t, full.Partial())

	partial := &BulkMoveResult{
		Success: []BulkSuccess{{CandidateID: "1"}, {CandidateID: "3"}},
		Failed:  []BulkFailure{{CandidateID: "2", Error: "boom"}},
	}
	assert.Equal(t, BulkPartialSuccess, partial.Outcome())
	assert.True(t, partial.Partial())
	assert.Equal(t, "2", string(partial.FailedIDs()[0]))
	assert.Len(t, partial.SucceededIDs(), 2)

	failed := &BulkMoveResult{Failed: []BulkFailure{{CandidateID: "2"}}}
	assert.Equal(t, BulkFullFailure, failed.Outcome())
	assert.False(t, failed.Partial())
}

func TestAutomationRule_Matches(t *testing.T) {
	screening := StageScreening
	rule := AutomationRule{ID: "r", Active: true, On: TriggerCandidateMoved, To: &screening}

	assert.True(t, rule.Matches(StageApplied, StageScreening))
	assert.False(t, rule.Matches(StageApplied, StageOffer))

	rule.Active = false
	assert.False(t, rule.Matches(StageApplied, StageScreening))
}

func TestAsAPIError(t *testing.T) {
	err := NewAPIError(CodeInvalidTransition, "cannot move from %s to %s", StageApplied, StageOffer)
	assert.Equal(t, "INVALID_TRANSITION: cannot move from Applied to Offer", err.Error())

	got, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidTransition, got.Code)
}
