package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/hireboard/internal/board"
	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
	"github.com/thenoetrevino/hireboard/internal/selection"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/undo"
)

// Config controls session behavior
type Config struct {
	// JobID scopes the board. Empty shows every candidate.
	JobID types.JobID
	// MovedBy is recorded on every move sent to the service
	MovedBy types.UserID
	// RefreshOnFailure re-fetches the board after a rejected single move
	RefreshOnFailure bool
	// UndoTriggersAutomation lets reversals fire automation rules
	UndoTriggersAutomation bool
}

// Session is the command interface to one board. Every request applies
// its change to the board immediately and reconciles in the background;
// the returned ticket resolves when the service has answered.
type Session struct {
	cfg       Config
	client    *reconcile.Client
	store     *board.Store
	ctrl      *Controller
	ledger    *undo.Ledger
	selection *selection.Set
	notifier  notify.Notifier
	logger    *slog.Logger

	inflight sync.WaitGroup
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithNotifier sets where user-facing notifications go
func WithNotifier(n notify.Notifier) SessionOption {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLedger replaces the default undo ledger
func WithLedger(l *undo.Ledger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.ledger = l
		}
	}
}

// WithInitialBoard seeds the board without a service round trip
func WithInitialBoard(snap board.Snapshot) SessionOption {
	return func(s *Session) {
		s.store.Replace(snap)
	}
}

// WithSessionLogger sets the logger
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session with an empty board. Call Refresh to load it.
func NewSession(client *reconcile.Client, cfg Config, opts ...SessionOption) *Session {
	s := &Session{
		cfg:       cfg,
		client:    client,
		store:     board.NewStore(board.Empty()),
		ledger:    undo.NewLedger(undo.DefaultWindow),
		selection: selection.New(),
		notifier:  notify.Discard,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctrl = NewController(s.store, s.ledger)
	return s
}

// Board returns the current board snapshot
func (s *Session) Board() board.Snapshot {
	return s.store.Snapshot()
}

// Version changes whenever the board does
func (s *Session) Version() uint64 {
	return s.store.Version()
}

// Ledger exposes the undo ledger
func (s *Session) Ledger() *undo.Ledger {
	return s.ledger
}

// Selection exposes the selection set
func (s *Session) Selection() *selection.Set {
	return s.selection
}

// Pending returns the moves awaiting the service
func (s *Session) Pending() []*Handle {
	return s.ctrl.Pending()
}

// Wait blocks until every in-flight request has resolved
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Refresh replaces the board with the service's candidates, keeping
// pending optimistic moves applied.
func (s *Session) Refresh(ctx context.Context) error {
	candidates, err := s.client.Refresh(ctx, s.cfg.JobID)
	if err != nil {
		return err
	}
	s.ctrl.Refresh(candidates)
	return nil
}

// RequestMove moves a candidate to dest. A move to the candidate's current
// stage resolves immediately as a no-op without contacting the service.
func (s *Session) RequestMove(ctx context.Context, id types.CandidateID, dest models.Stage, reason models.MoveReason) (*Ticket[MoveOutcome], error) {
	h, err := s.ctrl.BeginMove(id, dest, reason)
	if err != nil {
		s.notifyError(reason, err)
		return nil, err
	}
	if h == nil {
		return resolvedTicket(MoveOutcome{CandidateID: id, From: dest, To: dest, Noop: true}), nil
	}

	t := newTicket[MoveOutcome]()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		t.resolve(s.reconcileMove(ctx, h))
	}()
	return t, nil
}

func (s *Session) reconcileMove(ctx context.Context, h *Handle) MoveOutcome {
	out := MoveOutcome{CandidateID: h.CandidateID, From: h.From, To: h.To}
	suppress := h.Reason == models.ReasonUndo && !s.cfg.UndoTriggersAutomation

	res, err := s.client.MoveCandidate(ctx, models.MoveRequest{
		CandidateID:        h.CandidateID,
		From:               h.From,
		To:                 h.To,
		Reason:             h.Reason,
		MovedBy:            s.cfg.MovedBy,
		SuppressAutomation: suppress,
	})
	if err != nil {
		out.Err = err
		if rbErr := s.ctrl.Rollback(h); rbErr != nil {
			s.logger.Error("rollback failed", "candidate_id", h.CandidateID, "error", rbErr)
		}
		s.notifyMoveFailure(h, err)
		if s.cfg.RefreshOnFailure {
			if rErr := s.Refresh(context.WithoutCancel(ctx)); rErr != nil {
				s.logger.Warn("refresh after failed move", "error", rErr)
			}
		}
		return out
	}

	out.Result = res
	if cErr := s.ctrl.Confirm(h); cErr != nil {
		s.logger.Error("confirm failed", "candidate_id", h.CandidateID, "error", cErr)
	}
	s.notifyMoveSuccess(h, res)
	return out
}

// RequestBulkMove moves every selected candidate to dest. The selection is
// materialized and cleared at dispatch. Committed items stand even when
// others fail; failed items are rolled back one by one.
func (s *Session) RequestBulkMove(ctx context.Context, dest models.Stage) (*Ticket[*models.BulkMoveResult], error) {
	if !dest.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, dest)
	}
	ids := s.selection.Take()
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	return s.bulkMove(ctx, ids, dest)
}

// BulkMove moves an explicit list of candidates to dest
func (s *Session) BulkMove(ctx context.Context, ids []types.CandidateID, dest models.Stage) (*Ticket[*models.BulkMoveResult], error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	return s.bulkMove(ctx, ids, dest)
}

func (s *Session) bulkMove(ctx context.Context, ids []types.CandidateID, dest models.Stage) (*Ticket[*models.BulkMoveResult], error) {
	handles, err := s.ctrl.BeginBulkMove(ids, dest)
	if err != nil {
		return nil, err
	}

	t := newTicket[*models.BulkMoveResult]()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		res := s.client.BulkMoveCandidates(ctx, models.BulkMoveRequest{
			CandidateIDs: ids,
			To:           dest,
			MovedBy:      s.cfg.MovedBy,
		})

		committed := make(map[types.CandidateID]bool, len(res.Success))
		for _, ok := range res.Success {
			committed[ok.CandidateID] = true
		}
		for _, h := range handles {
			if committed[h.CandidateID] {
				_ = s.ctrl.Confirm(h)
				continue
			}
			if rbErr := s.ctrl.Rollback(h); rbErr != nil {
				s.logger.Error("rollback failed", "candidate_id", h.CandidateID, "error", rbErr)
			}
		}

		s.notifyBulk(res, dest)
		if rErr := s.Refresh(context.WithoutCancel(ctx)); rErr != nil {
			s.logger.Warn("refresh after bulk move", "error", rErr)
		}
		t.resolve(res)
	}()
	return t, nil
}

// RequestUndo reverses the most recent confirmed move. The ledger entry is
// consumed up front and is not restored if the reversal fails.
func (s *Session) RequestUndo(ctx context.Context) (*Ticket[MoveOutcome], error) {
	entry, ok := s.ledger.Consume()
	if !ok {
		return nil, ErrNothingToUndo
	}
	s.logger.Debug("undo requested", "candidate_id", entry.CandidateID, "from", entry.To, "to", entry.From)
	return s.RequestMove(ctx, entry.CandidateID, entry.From, models.ReasonUndo)
}

// Retry re-attempts the move carried by a retry action
func (s *Session) Retry(ctx context.Context, action notify.Action) (*Ticket[MoveOutcome], error) {
	if action.Kind != notify.ActionRetry {
		return nil, fmt.Errorf("not a retry action")
	}
	return s.RequestMove(ctx, action.CandidateID, action.To, models.ReasonRetry)
}

// Toggle flips the selection state of a candidate
func (s *Session) Toggle(id types.CandidateID) bool {
	return s.selection.Toggle(id)
}

// ClearSelection empties the selection
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// Assign sets the recruiter responsible for a candidate
func (s *Session) Assign(ctx context.Context, id types.CandidateID, assignee types.UserID) error {
	if err := s.client.AssignCandidate(ctx, id, assignee); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Title: "Assignment failed", Message: failureMessage(err)})
		return err
	}
	return s.Refresh(ctx)
}

// Watch refreshes the board whenever a change for this session's job
// arrives on ch. It returns when ctx ends or ch closes.
func (s *Session) Watch(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if !s.relevant(ev) {
				continue
			}
			// Collapse a burst of changes into one refresh
		drain:
			for {
				select {
				case _, ok := <-ch:
					if !ok {
						break drain
					}
				default:
					break drain
				}
			}
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("refresh on board change", "error", err)
			}
		}
	}
}

func (s *Session) relevant(ev events.Event) bool {
	if ev.Type != events.EventBoardChanged {
		return false
	}
	return s.cfg.JobID == "" || ev.JobID == "" || ev.JobID == s.cfg.JobID
}

// ============================================================================
// NOTIFICATIONS
// ============================================================================

func (s *Session) notifyMoveSuccess(h *Handle, res *models.MoveResult) {
	if h.Reason == models.ReasonUndo {
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelInfo,
			Title:   "Move undone",
			Message: fmt.Sprintf("%s returned to %s", h.Name(), h.To),
		})
		return
	}

	s.notifier.Notify(notify.Notification{
		Level:    notify.LevelSuccess,
		Title:    "Candidate moved",
		Message:  fmt.Sprintf("%s moved to %s", h.Name(), h.To),
		Duration: notify.UndoDuration,
		Action:   &notify.Action{Kind: notify.ActionUndo, Label: "Undo", CandidateID: h.CandidateID, To: h.From, Reason: models.ReasonUndo},
	})

	if res != nil && len(res.TriggeredRules) > 0 {
		rules := make([]string, len(res.TriggeredRules))
		for i, r := range res.TriggeredRules {
			rules[i] = string(r)
		}
		s.notifier.Notify(notify.Notification{
			Level:    notify.LevelInfo,
			Title:    "Automation triggered",
			Message:  fmt.Sprintf("%d rule(s) executed: %s", len(rules), strings.Join(rules, ", ")),
			Duration: notify.AutomationDuration,
		})
	}
}

func (s *Session) notifyMoveFailure(h *Handle, err error) {
	if h.Reason == models.ReasonUndo {
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelError,
			Title:   "Undo failed",
			Message: failureMessage(err),
		})
		return
	}

	n := notify.Notification{
		Level:   notify.LevelError,
		Title:   "Move failed",
		Message: failureMessage(err),
	}
	if f, ok := reconcile.AsFailure(err); ok && f.Retryable() {
		n.Action = &notify.Action{Kind: notify.ActionRetry, Label: "Retry", CandidateID: h.CandidateID, To: h.To, Reason: models.ReasonRetry}
	}
	s.notifier.Notify(n)
}

func (s *Session) notifyBulk(res *models.BulkMoveResult, dest models.Stage) {
	switch res.Outcome() {
	case models.BulkFullSuccess:
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelSuccess,
			Title:   "Bulk move complete",
			Message: fmt.Sprintf("Moved %d candidate(s) to %s", len(res.Success), dest),
		})
	case models.BulkPartialSuccess:
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelWarning,
			Title:   "Partial success",
			Message: fmt.Sprintf("%d moved, %d failed: %s", len(res.Success), len(res.Failed), describeFailures(res.Failed)),
		})
	default:
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelError,
			Title:   "Bulk move failed",
			Message: describeFailures(res.Failed),
		})
	}
}

func (s *Session) notifyError(reason models.MoveReason, err error) {
	title := "Move failed"
	if reason == models.ReasonUndo {
		title = "Undo failed"
	}
	s.notifier.Notify(notify.Notification{Level: notify.LevelError, Title: title, Message: err.Error()})
}

func failureMessage(err error) string {
	if f, ok := reconcile.AsFailure(err); ok {
		return f.Message
	}
	return err.Error()
}

func describeFailures(failed []models.BulkFailure) string {
	parts := make([]string, len(failed))
	for i, f := range failed {
		parts[i] = fmt.Sprintf("%s (%s)", f.CandidateID, f.Error)
	}
	return strings.Join(parts, ", ")
}

// IsFailure reports whether err came back from the service, as opposed
// to being rejected locally before any call was made
func IsFailure(err error) bool {
	var f *reconcile.Failure
	return errors.As(err, &f)
}
