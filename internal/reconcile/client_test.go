package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// stubService answers from function fields; unset fields succeed
type stubService struct {
	move     func(ctx context.Context, req models.MoveRequest) (*models.MoveResult, error)
	bulk     func(ctx context.Context, req models.BulkMoveRequest) (*models.BulkMoveResult, error)
	assign   func(ctx context.Context, id types.CandidateID, assignee types.UserID) error
	schedule func(ctx context.Context, req models.InterviewRequest) (*models.Interview, error)
	notify   func(ctx context.Context, req models.NotificationRequest) error
	list     func(ctx context.Context, jobID types.JobID) ([]*models.Candidate, error)
}

func (s *stubService) MoveCandidate(ctx context.Context, req models.MoveRequest) (*models.MoveResult, error) {
	if s.move != nil {
		return s.move(ctx, req)
	}
	return &models.MoveResult{CandidateID: req.CandidateID, From: req.From, To: req.To, Timestamp: time.Now()}, nil
}

func (s *stubService) BulkMoveCandidates(ctx context.Context, req models.BulkMoveRequest) (*models.BulkMoveResult, error) {
	if s.bulk != nil {
		return s.bulk(ctx, req)
	}
	res := &models.BulkMoveResult{}
	for _, id := range req.CandidateIDs {
		res.Success = append(res.Success, models.BulkSuccess{CandidateID: id, Status: req.To})
	}
	return res, nil
}

func (s *stubService) AssignCandidate(ctx context.Context, id types.CandidateID, assignee types.UserID) error {
	if s.assign != nil {
		return s.assign(ctx, id, assignee)
	}
	return nil
}

func (s *stubService) ScheduleInterview(ctx context.Context, req models.InterviewRequest) (*models.Interview, error) {
	if s.schedule != nil {
		return s.schedule(ctx, req)
	}
	return &models.Interview{ID: "interview-1", CandidateID: req.CandidateID}, nil
}

func (s *stubService) SendNotification(ctx context.Context, req models.NotificationRequest) error {
	if s.notify != nil {
		return s.notify(ctx, req)
	}
	return nil
}

func (s *stubService) ListCandidates(ctx context.Context, jobID types.JobID) ([]*models.Candidate, error) {
	if s.list != nil {
		return s.list(ctx, jobID)
	}
	return nil, nil
}

func moveReq(id string) models.MoveRequest {
	return models.MoveRequest{
		CandidateID: types.CandidateID(id),
		From:        models.StageApplied,
		To:          models.StageScreening,
		Reason:      models.ReasonDrag,
	}
}

// ============================================================================
// CLASSIFICATION
// ============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		code string
	}{
		{"not found", models.NewAPIError(models.CodeCandidateNotFound, "Candidate 9 not found"), KindNotFound, models.CodeCandidateNotFound},
		{"stale", models.NewAPIError(models.CodeInvalidStatusTransition, "Candidate is in Screening, not Applied"), KindStaleState, models.CodeInvalidStatusTransition},
		{"domain rule", models.NewAPIError(models.CodeInvalidTransition, "must go through screening process"), KindDomainRule, models.CodeInvalidTransition},
		{"unknown code", models.NewAPIError("QUOTA_EXCEEDED", "too many moves"), KindDomainRule, "QUOTA_EXCEEDED"},
		{"delivery", models.NewAPIError(models.CodeDeliveryFailed, "no recipients"), KindTransient, models.CodeDeliveryFailed},
		{"deadline", context.DeadlineExceeded, KindTransient, CodeTimeout},
		{"canceled", context.Canceled, KindTransient, CodeCanceled},
		{"network", errors.New("connection reset by peer"), KindTransient, CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(OpMove, tt.err)
			require.NotNil(t, f)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.code, f.Code)
			assert.ErrorIs(t, f, tt.err)
		})
	}

	assert.Nil(t, Classify(OpMove, nil))
}

func TestClassify_KeepsDomainMessageVerbatim(t *testing.T) {
	f := Classify(OpMove, models.NewAPIError(models.CodeInvalidTransition, "Cannot move from Applied to Offer - must go through screening process"))
	assert.Equal(t, "Cannot move from Applied to Offer - must go through screening process", f.Message)
	assert.True(t, f.Retryable())

	notFound := Classify(OpMove, models.NewAPIError(models.CodeCandidateNotFound, "gone"))
	assert.False(t, notFound.Retryable())
}

// ============================================================================
// SINGLE MOVE
// ============================================================================

func TestMoveCandidate_Success(t *testing.T) {
	svc := &stubService{move: func(_ context.Context, req models.MoveRequest) (*models.MoveResult, error) {
		return &models.MoveResult{CandidateID: req.CandidateID, From: req.From, To: req.To,
			TriggeredRules: []types.RuleID{"auto-assign-recruiter"}}, nil
	}}
	c := NewClient(svc)

	res, err := c.MoveCandidate(context.Background(), moveReq("1"))
	require.NoError(t, err)
	assert.Equal(t, models.StageScreening, res.To)
	assert.Equal(t, []types.RuleID{"auto-assign-recruiter"}, res.TriggeredRules)
}

func TestMoveCandidate_StaleState(t *testing.T) {
	svc := &stubService{move: func(context.Context, models.MoveRequest) (*models.MoveResult, error) {
		return nil, models.NewAPIError(models.CodeInvalidStatusTransition, "Candidate is in Screening, not Applied")
	}}
	c := NewClient(svc)

	_, err := c.MoveCandidate(context.Background(), moveReq("1"))
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindStaleState, f.Kind)
	assert.Equal(t, OpMove, f.Op)
}

func TestMoveCandidate_TimeoutOnHungService(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	svc := &stubService{move: func(context.Context, models.MoveRequest) (*models.MoveResult, error) {
		<-release // ignores its context
		return nil, nil
	}}
	c := NewClient(svc, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := c.MoveCandidate(context.Background(), moveReq("1"))
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, CodeTimeout, f.Code)
	assert.Equal(t, KindTransient, f.Kind)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMoveCandidate_InjectedFaultSkipsService(t *testing.T) {
	called := false
	svc := &stubService{move: func(context.Context, models.MoveRequest) (*models.MoveResult, error) {
		called = true
		return nil, nil
	}}
	c := NewClient(svc, WithFaults(FailCandidates{"1": nil}))

	_, err := c.MoveCandidate(context.Background(), moveReq("1"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.False(t, called)
}

func TestMoveCandidate_ServicePanicIsTransient(t *testing.T) {
	svc := &stubService{move: func(context.Context, models.MoveRequest) (*models.MoveResult, error) {
		panic("boom")
	}}
	_, err := NewClient(svc).MoveCandidate(context.Background(), moveReq("1"))
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, CodeServiceUnavailable, f.Code)
}

// ============================================================================
// BULK MOVE
// ============================================================================

func TestBulkMove_PartialAccounting(t *testing.T) {
	c := NewClient(&stubService{}, WithFaults(FailCandidates{"b": nil}))

	res := c.BulkMoveCandidates(context.Background(), models.BulkMoveRequest{
		CandidateIDs: []types.CandidateID{"a", "b", "c"},
		To:           models.StageScreening,
	})

	assert.Equal(t, []types.CandidateID{"a", "c"}, res.SucceededIDs())
	assert.Equal(t, []types.CandidateID{"b"}, res.FailedIDs())
	assert.True(t, res.Partial())
	assert.Equal(t, ErrInjected.Error(), res.Failed[0].Error)
}

func TestBulkMove_ServiceOutageFailsEveryID(t *testing.T) {
	svc := &stubService{bulk: func(context.Context, models.BulkMoveRequest) (*models.BulkMoveResult, error) {
		return nil, errors.New("connection refused")
	}}
	res := NewClient(svc).BulkMoveCandidates(context.Background(), models.BulkMoveRequest{
		CandidateIDs: []types.CandidateID{"a", "b"},
		To:           models.StageOffer,
	})

	assert.Empty(t, res.Success)
	assert.Equal(t, models.BulkFullFailure, res.Outcome())
	assert.Equal(t, "connection refused", res.Failed[1].Error)
}

func TestBulkMove_MissingResultCountsAsFailure(t *testing.T) {
	svc := &stubService{bulk: func(_ context.Context, req models.BulkMoveRequest) (*models.BulkMoveResult, error) {
		return &models.BulkMoveResult{Success: []models.BulkSuccess{{CandidateID: "a", Status: req.To}}}, nil
	}}
	res := NewClient(svc).BulkMoveCandidates(context.Background(), models.BulkMoveRequest{
		CandidateIDs: []types.CandidateID{"a", "b", "a"},
		To:           models.StageOffer,
	})

	assert.Equal(t, []types.CandidateID{"a"}, res.SucceededIDs())
	assert.Equal(t, []types.CandidateID{"b"}, res.FailedIDs())
}

// ============================================================================
// OTHER OPERATIONS
// ============================================================================

func TestScheduleInterview_Conflict(t *testing.T) {
	svc := &stubService{schedule: func(context.Context, models.InterviewRequest) (*models.Interview, error) {
		return nil, models.NewAPIError(models.CodeSchedulingConflict, "overlaps an existing interview")
	}}
	_, err := NewClient(svc).ScheduleInterview(context.Background(), models.InterviewRequest{CandidateID: "1"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeSchedulingConflict, f.Code)
	assert.Equal(t, KindDomainRule, f.Kind)
}

func TestAssignAndNotify(t *testing.T) {
	var gotAssignee types.UserID
	svc := &stubService{assign: func(_ context.Context, _ types.CandidateID, a types.UserID) error {
		gotAssignee = a
		return nil
	}}
	c := NewClient(svc, WithFaults(FailOps{OpNotify: models.NewAPIError(models.CodeDeliveryFailed, "smtp down")}))

	require.NoError(t, c.AssignCandidate(context.Background(), "1", "recruiter-1"))
	assert.Equal(t, types.UserID("recruiter-1"), gotAssignee)

	err := c.SendNotification(context.Background(), models.NotificationRequest{Channel: models.ChannelEmail})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeDeliveryFailed, f.Code)
}

func TestRandomFaults_Reproducible(t *testing.T) {
	a := NewRandomFaults(0.5, 42)
	b := NewRandomFaults(0.5, 42)
	for range 50 {
		assert.Equal(t, a.Inject(OpBulkMove, "x") == nil, b.Inject(OpBulkMove, "x") == nil)
	}
	assert.NoError(t, NewRandomFaults(0, 1).Inject(OpMove, "x"))
	assert.Error(t, NewRandomFaults(1, 1).Inject(OpMove, "x"))
}

// ============================================================================
// METRICS
// ============================================================================

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc := &stubService{move: func(_ context.Context, req models.MoveRequest) (*models.MoveResult, error) {
		if req.CandidateID == "stale" {
			return nil, models.NewAPIError(models.CodeInvalidStatusTransition, "stale")
		}
		return &models.MoveResult{CandidateID: req.CandidateID}, nil
	}}
	c := NewClient(svc, WithMetrics(m))

	_, _ = c.MoveCandidate(context.Background(), moveReq("1"))
	_, _ = c.MoveCandidate(context.Background(), moveReq("2"))
	_, _ = c.MoveCandidate(context.Background(), moveReq("stale"))
	c.BulkMoveCandidates(context.Background(), models.BulkMoveRequest{CandidateIDs: []types.CandidateID{"a"}, To: models.StageOffer})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(OpMove, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(OpMove, "stale_state")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(OpBulkMove, "success")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}
