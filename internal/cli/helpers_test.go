package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
	"github.com/thenoetrevino/hireboard/internal/types"
)

func TestResolveStage(t *testing.T) {
	tests := []struct {
		current models.Stage
		target  string
		want    models.Stage
		wantErr string
	}{
		{models.StageApplied, "next", models.StageScreening, ""},
		{models.StageScreening, "PREV", models.StageApplied, ""},
		{models.StageApplied, "phone-screen", models.StagePhoneScreen, ""},
		{models.StageApplied, "Technical Interview", models.StageTechnicalInterview, ""},
		{models.StageApplied, "prev", "", "first stage"},
		{models.StageRejected, "next", "", "last stage"},
		{models.StageApplied, "onsite", "", `unknown stage "onsite"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"/"+tt.target, func(t *testing.T) {
			got, err := ResolveStage(tt.current, tt.target)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-01-20T14:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 20, 14, 0, 0, 0, time.UTC)))

	got, err = ParseTime("2024-01-20 14:00")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, time.Local, got.Location())

	_, err = ParseTime("tomorrow")
	assert.ErrorContains(t, err, "invalid time")
}

func TestCandidateIDs(t *testing.T) {
	got := CandidateIDs([]string{"1,2", " 3 ", "2", "", "4,,"})
	assert.Equal(t, []types.CandidateID{"1", "2", "3", "4"}, got)
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitError},
		{"explicit", Exit(ExitUsage, errors.New("bad flag")), ExitUsage},
		{"not found", &reconcile.Failure{Kind: reconcile.KindNotFound}, ExitNotFound},
		{"stale", &reconcile.Failure{Kind: reconcile.KindStaleState}, ExitValidation},
		{"rule", &reconcile.Failure{Kind: reconcile.KindDomainRule}, ExitValidation},
		{"transient", &reconcile.Failure{Kind: reconcile.KindTransient}, ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}
