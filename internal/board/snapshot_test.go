package board

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func candidate(id string, stage models.Stage) *models.Candidate {
	return &models.Candidate{ID: types.CandidateID(id), Name: "Candidate " + id, Status: stage}
}

func ids(col models.Column) []types.CandidateID {
	out := make([]types.CandidateID, len(col.Candidates))
	for i, c := range col.Candidates {
		out[i] = c.ID
	}
	return out
}

func mustColumn(t *testing.T, s Snapshot, stage models.Stage) models.Column {
	t.Helper()
	col, ok := s.Column(stage)
	require.True(t, ok, "column %q missing", stage)
	return col
}

func sampleBoard() Snapshot {
	return FromCandidates([]*models.Candidate{
		candidate("1", models.StageApplied),
		candidate("2", models.StageApplied),
		candidate("3", models.StageApplied),
		candidate("4", models.StageScreening),
	})
}

// ============================================================================
// PROJECTION
// ============================================================================

func TestFromCandidates_ProjectsByStatus(t *testing.T) {
	s := sampleBoard()

	assert.Len(t, s.Columns(), len(models.Stages))
	assert.Equal(t, []types.CandidateID{"1", "2", "3"}, ids(mustColumn(t, s, models.StageApplied)))
	assert.Equal(t, []types.CandidateID{"4"}, ids(mustColumn(t, s, models.StageScreening)))
	assert.Equal(t, 4, s.Len())
	assert.NoError(t, s.Validate())
}

func TestFromCandidates_DropsUnknownStatus(t *testing.T) {
	s := FromCandidates([]*models.Candidate{candidate("x", models.Stage("Archived")), nil})
	assert.Equal(t, 0, s.Len())
}

func TestColumns_ReturnsCopy(t *testing.T) {
	s := sampleBoard()
	cols := s.Columns()
	cols[0].Candidates[0].Name = "mutated"

	col := mustColumn(t, s, models.StageApplied)
	assert.Equal(t, "Candidate 1", col.Candidates[0].Name)
}

// ============================================================================
// SINGLE MOVE
// ============================================================================

func TestApplyMove_PrependsToDestination(t *testing.T) {
	s := sampleBoard()
	next := s.ApplyMove("2", models.StageApplied, models.StageScreening)

	assert.Equal(t, []types.CandidateID{"1", "3"}, ids(mustColumn(t, next, models.StageApplied)))
	screening := mustColumn(t, next, models.StageScreening)
	assert.Equal(t, []types.CandidateID{"2", "4"}, ids(screening))
	assert.Equal(t, models.StageScreening, screening.Candidates[0].Status)
	assert.NoError(t, next.Validate())
}

func TestApplyMove_IsPure(t *testing.T) {
	s := sampleBoard()
	_ = s.ApplyMove("1", models.StageApplied, models.StageOffer)

	assert.Equal(t, []types.CandidateID{"1", "2", "3"}, ids(mustColumn(t, s, models.StageApplied)))
	assert.Empty(t, mustColumn(t, s, models.StageOffer).Candidates)
}

func TestApplyMove_NoOps(t *testing.T) {
	s := sampleBoard()

	tests := []struct {
		name   string
		id     types.CandidateID
		source models.Stage
		dest   models.Stage
	}{
		{"same column", "1", models.StageApplied, models.StageApplied},
		{"candidate not in source", "4", models.StageApplied, models.StageOffer},
		{"unknown source", "1", models.Stage("Nope"), models.StageOffer},
		{"unknown destination", "1", models.StageApplied, models.Stage("Nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := s.ApplyMove(tt.id, tt.source, tt.dest)
			assert.Equal(t, s.Columns(), next.Columns())
		})
	}
}

// ============================================================================
// BULK MOVE
// ============================================================================

func TestApplyBulkMove_MovesFromAnyColumn(t *testing.T) {
	s := sampleBoard()
	next := s.ApplyBulkMove([]types.CandidateID{"4", "1"}, models.StagePhoneScreen)

	assert.Equal(t, []types.CandidateID{"2", "3"}, ids(mustColumn(t, next, models.StageApplied)))
	assert.Empty(t, mustColumn(t, next, models.StageScreening).Candidates)
	assert.Equal(t, []types.CandidateID{"4", "1"}, ids(mustColumn(t, next, models.StagePhoneScreen)))
	assert.NoError(t, next.Validate())
}

func TestApplyBulkMove_IgnoresUnknownDuplicateAndResident(t *testing.T) {
	s := sampleBoard()
	next := s.ApplyBulkMove([]types.CandidateID{"4", "ghost", "1", "1"}, models.StageScreening)

	assert.Equal(t, []types.CandidateID{"1", "4"}, ids(mustColumn(t, next, models.StageScreening)))
	assert.NoError(t, next.Validate())
}

func TestApplyBulkMove_EmptyListIsNoop(t *testing.T) {
	s := sampleBoard()
	assert.Equal(t, s.Columns(), s.ApplyBulkMove(nil, models.StageOffer).Columns())
}

// ============================================================================
// RESTORE
// ============================================================================

func TestRestore_ReturnsCandidateToOriginalSlot(t *testing.T) {
	s := sampleBoard()
	stage, pos, c, ok := s.Locate("2")
	require.True(t, ok)

	moved := s.ApplyMove("2", stage, models.StageFinalist)
	restored := moved.Restore(c, stage, pos)

	assert.Equal(t, s.Columns(), restored.Columns())
}

func TestRestore_ClampsPosition(t *testing.T) {
	s := sampleBoard()
	_, _, c, _ := s.Locate("4")
	restored := s.Restore(c, models.StageApplied, 99)

	assert.Equal(t, []types.CandidateID{"1", "2", "3", "4"}, ids(mustColumn(t, restored, models.StageApplied)))
	assert.NoError(t, restored.Validate())
}

// ============================================================================
// INVARIANTS
// ============================================================================

func TestValidate_DetectsViolations(t *testing.T) {
	dup := New([]models.Column{
		{ID: models.StageApplied, Candidates: []models.Candidate{{ID: "1", Status: models.StageApplied}}},
		{ID: models.StageScreening, Candidates: []models.Candidate{{ID: "1", Status: models.StageScreening}}},
	})
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateCandidate)

	mismatch := New([]models.Column{
		{ID: models.StageApplied, Candidates: []models.Candidate{{ID: "1", Status: models.StageOffer}}},
	})
	assert.ErrorIs(t, mismatch.Validate(), ErrStatusMismatch)

	unknown := New([]models.Column{{ID: models.Stage("Archived")}})
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownColumn)
}

func TestPartitionInvariant_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	var seed []*models.Candidate
	for i := range 20 {
		seed = append(seed, candidate(fmt.Sprintf("c%d", i), models.Stages[i%len(models.Stages)]))
	}
	s := FromCandidates(seed)

	for step := range 500 {
		dest := models.Stages[rng.IntN(len(models.Stages))]
		if step%3 == 0 {
			var batch []types.CandidateID
			for range rng.IntN(5) {
				batch = append(batch, seed[rng.IntN(len(seed))].ID)
			}
			s = s.ApplyBulkMove(batch, dest)
		} else {
			id := seed[rng.IntN(len(seed))].ID
			from, err := s.StageOf(id)
			require.NoError(t, err)
			s = s.ApplyMove(id, from, dest)
		}
		require.NoError(t, s.Validate(), "step %d", step)
		require.Equal(t, len(seed), s.Len(), "step %d", step)
	}
}

func TestStageOf_NotFound(t *testing.T) {
	_, err := sampleBoard().StageOf("missing")
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}
