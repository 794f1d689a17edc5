// Package reconcile sends pipeline changes to the persistence service and
// classifies what comes back. Every call is bounded by a timeout so a hung
// service resolves to a failure instead of blocking the board.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// Operation names used for failures, fault injection and metrics
const (
	OpMove     = "move"
	OpBulkMove = "bulk_move"
	OpAssign   = "assign"
	OpSchedule = "schedule_interview"
	OpNotify   = "notify"
	OpRefresh  = "refresh"
)

// DefaultTimeout bounds a single call when none is configured
const DefaultTimeout = 10 * time.Second

// Service is the persistence authority for candidates
type Service interface {
	MoveCandidate(ctx context.Context, req models.MoveRequest) (*models.MoveResult, error)
	BulkMoveCandidates(ctx context.Context, req models.BulkMoveRequest) (*models.BulkMoveResult, error)
	AssignCandidate(ctx context.Context, id types.CandidateID, assignee types.UserID) error
	ScheduleInterview(ctx context.Context, req models.InterviewRequest) (*models.Interview, error)
	SendNotification(ctx context.Context, req models.NotificationRequest) error
	ListCandidates(ctx context.Context, jobID types.JobID) ([]*models.Candidate, error)
}

// Client wraps a Service with timeouts, classification and fault injection
type Client struct {
	svc     Service
	timeout time.Duration
	faults  FaultInjector
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-call deadline
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithFaults installs a fault injector
func WithFaults(f FaultInjector) Option {
	return func(c *Client) {
		if f != nil {
			c.faults = f
		}
	}
}

// WithMetrics records call outcomes
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for svc
func NewClient(svc Service, opts ...Option) *Client {
	c := &Client{
		svc:     svc,
		timeout: DefaultTimeout,
		faults:  NoFaults{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-call deadline
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// MoveCandidate asks the service to move one candidate. The returned
// error is always a *Failure.
func (c *Client) MoveCandidate(ctx context.Context, req models.MoveRequest) (*models.MoveResult, error) {
	started := time.Now()
	if err := c.faults.Inject(OpMove, req.CandidateID); err != nil {
		return nil, c.fail(OpMove, started, err, "candidate_id", req.CandidateID)
	}

	result, err := call(ctx, c.timeout, func(ctx context.Context) (*models.MoveResult, error) {
		return c.svc.MoveCandidate(ctx, req)
	})
	if err != nil {
		return nil, c.fail(OpMove, started, err,
			"candidate_id", req.CandidateID, "from", req.From, "to", req.To, "reason", req.Reason)
	}
	if result == nil {
		result = &models.MoveResult{CandidateID: req.CandidateID, From: req.From, To: req.To, Timestamp: time.Now()}
	}

	c.metrics.observe(OpMove, "success", started)
	c.logger.Debug("move reconciled",
		"candidate_id", req.CandidateID,
		"from", req.From,
		"to", req.To,
		"reason", req.Reason,
		"triggered_rules", len(result.TriggeredRules))
	return result, nil
}

// BulkMoveCandidates always resolves with a per-id result in request order.
// When the whole call fails every forwarded id is reported failed with the
// failure's message.
func (c *Client) BulkMoveCandidates(ctx context.Context, req models.BulkMoveRequest) *models.BulkMoveResult {
	started := time.Now()
	failed := make(map[types.CandidateID]string)

	forwarded := make([]types.CandidateID, 0, len(req.CandidateIDs))
	for _, id := range req.CandidateIDs {
		if err := c.faults.Inject(OpBulkMove, id); err != nil {
			failed[id] = Classify(OpBulkMove, err).Message
			continue
		}
		forwarded = append(forwarded, id)
	}

	succeeded := make(map[types.CandidateID]models.Stage)
	if len(forwarded) > 0 {
		svcReq := req
		svcReq.CandidateIDs = forwarded
		res, err := call(ctx, c.timeout, func(ctx context.Context) (*models.BulkMoveResult, error) {
			return c.svc.BulkMoveCandidates(ctx, svcReq)
		})
		if err != nil {
			f := Classify(OpBulkMove, err)
			c.logger.Warn("bulk move failed", "code", f.Code, "error", f.Message, "count", len(forwarded))
			for _, id := range forwarded {
				failed[id] = f.Message
			}
		} else if res != nil {
			for _, s := range res.Success {
				succeeded[s.CandidateID] = s.Status
			}
			for _, fl := range res.Failed {
				failed[fl.CandidateID] = fl.Error
			}
		}
	}

	out := &models.BulkMoveResult{
		Success: []models.BulkSuccess{},
		Failed:  []models.BulkFailure{},
	}
	seen := make(map[types.CandidateID]bool, len(req.CandidateIDs))
	for _, id := range req.CandidateIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if msg, ok := failed[id]; ok {
			out.Failed = append(out.Failed, models.BulkFailure{CandidateID: id, Error: msg})
			continue
		}
		if status, ok := succeeded[id]; ok {
			out.Success = append(out.Success, models.BulkSuccess{CandidateID: id, Status: status})
			continue
		}
		out.Failed = append(out.Failed, models.BulkFailure{CandidateID: id, Error: "no result returned"})
	}

	outcome := "success"
	switch out.Outcome() {
	case models.BulkPartialSuccess:
		outcome = "partial"
	case models.BulkFullFailure:
		outcome = "failed"
	}
	c.metrics.observe(OpBulkMove, outcome, started)
	c.logger.Debug("bulk move reconciled",
		"to", req.To,
		"succeeded", len(out.Success),
		"failed", len(out.Failed))
	return out
}

// AssignCandidate sets the candidate's assignee
func (c *Client) AssignCandidate(ctx context.Context, id types.CandidateID, assignee types.UserID) error {
	started := time.Now()
	if err := c.faults.Inject(OpAssign, id); err != nil {
		return c.fail(OpAssign, started, err, "candidate_id", id)
	}
	_, err := call(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.svc.AssignCandidate(ctx, id, assignee)
	})
	if err != nil {
		return c.fail(OpAssign, started, err, "candidate_id", id, "assignee_id", assignee)
	}
	c.metrics.observe(OpAssign, "success", started)
	return nil
}

// ScheduleInterview books an interview
func (c *Client) ScheduleInterview(ctx context.Context, req models.InterviewRequest) (*models.Interview, error) {
	started := time.Now()
	if err := c.faults.Inject(OpSchedule, req.CandidateID); err != nil {
		return nil, c.fail(OpSchedule, started, err, "candidate_id", req.CandidateID)
	}
	iv, err := call(ctx, c.timeout, func(ctx context.Context) (*models.Interview, error) {
		return c.svc.ScheduleInterview(ctx, req)
	})
	if err != nil {
		return nil, c.fail(OpSchedule, started, err, "candidate_id", req.CandidateID)
	}
	c.metrics.observe(OpSchedule, "success", started)
	return iv, nil
}

// SendNotification queues an outbound message
func (c *Client) SendNotification(ctx context.Context, req models.NotificationRequest) error {
	started := time.Now()
	if err := c.faults.Inject(OpNotify, ""); err != nil {
		return c.fail(OpNotify, started, err, "channel", req.Channel)
	}
	_, err := call(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.svc.SendNotification(ctx, req)
	})
	if err != nil {
		return c.fail(OpNotify, started, err, "channel", req.Channel, "template", req.Template)
	}
	c.metrics.observe(OpNotify, "success", started)
	return nil
}

// Refresh fetches the authoritative candidate list for a job.
// An empty job id returns every candidate.
func (c *Client) Refresh(ctx context.Context, jobID types.JobID) ([]*models.Candidate, error) {
	started := time.Now()
	candidates, err := call(ctx, c.timeout, func(ctx context.Context) ([]*models.Candidate, error) {
		return c.svc.ListCandidates(ctx, jobID)
	})
	if err != nil {
		return nil, c.fail(OpRefresh, started, err, "job_id", jobID)
	}
	c.metrics.observe(OpRefresh, "success", started)
	return candidates, nil
}

func (c *Client) fail(op string, started time.Time, err error, attrs ...any) *Failure {
	f := Classify(op, err)
	c.metrics.observe(op, f.Kind.String(), started)
	c.logger.Warn("reconcile failed",
		append([]any{"op", op, "code", f.Code, "kind", f.Kind.String(), "error", f.Message}, attrs...)...)
	return f
}

// call runs fn under a deadline. It returns when fn does or when the
// deadline passes, whichever is first, so a service that ignores its
// context still cannot hold the caller.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				done <- result{zero, fmt.Errorf("service panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
