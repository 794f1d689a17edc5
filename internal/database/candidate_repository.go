package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const candidateColumns = `id, job_id, name, email, phone, title, location, status,
	assigned_to, score, applied_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var (
		c         models.Candidate
		assignee  sql.NullString
		score     sql.NullFloat64
		appliedAt int64
		updatedAt int64
		status    string
		id, jobID string
	)
	err := row.Scan(&id, &jobID, &c.Name, &c.Email, &c.Phone, &c.Title, &c.Location, &status,
		&assignee, &score, &appliedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = types.CandidateID(id)
	c.JobID = types.JobID(jobID)
	c.Status = models.Stage(status)
	c.AssigneeID = types.UserID(assignee.String)
	c.Score = floatPtr(score)
	c.AppliedAt = fromMillis(appliedAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return &c, nil
}

// ============================================================================
// Jobs
// ============================================================================

// CreateJob inserts a job. A blank id gets a generated one.
func (r *Repository) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	out := *job
	if out.ID == "" {
		out.ID = types.JobID("job-" + string(types.NewCandidateID()))
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = r.now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, department, created_at) VALUES (?, ?, ?, ?)`,
		string(out.ID), out.Title, out.Department, toMillis(out.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job %s: %w", out.ID, err)
	}
	out.CreatedAt = fromMillis(toMillis(out.CreatedAt))
	return &out, nil
}

// GetJob returns one job or ErrJobNotFound
func (r *Repository) GetJob(ctx context.Context, id types.JobID) (*models.Job, error) {
	var (
		job       models.Job
		rawID     string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, department, created_at FROM jobs WHERE id = ?`, string(id),
	).Scan(&rawID, &job.Title, &job.Department, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	job.ID = types.JobID(rawID)
	job.CreatedAt = fromMillis(createdAt)
	return &job, nil
}

// ListJobs returns every job, oldest first
func (r *Repository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, department, created_at FROM jobs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		var (
			job       models.Job
			rawID     string
			createdAt int64
		)
		if err := rows.Scan(&rawID, &job.Title, &job.Department, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.ID = types.JobID(rawID)
		job.CreatedAt = fromMillis(createdAt)
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// ============================================================================
// Candidates
// ============================================================================

// CreateCandidate inserts a candidate at the front of its stage.
// Blank id, status and timestamps are filled in.
func (r *Repository) CreateCandidate(ctx context.Context, c *models.Candidate) (*models.Candidate, error) {
	out := *c
	if out.ID == "" {
		out.ID = types.NewCandidateID()
	}
	if out.Status == "" {
		out.Status = models.StageApplied
	}
	if !out.Status.Valid() {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "unknown stage %q", out.Status)
	}
	now := r.now()
	if out.AppliedAt.IsZero() {
		out.AppliedAt = now
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO candidates (id, job_id, name, email, phone, title, location, status,
			assigned_to, score, board_rank, applied_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(board_rank), 0) + 1 FROM candidates), ?, ?)`,
		string(out.ID), string(out.JobID), out.Name, out.Email, out.Phone, out.Title, out.Location,
		string(out.Status), nullString(string(out.AssigneeID)), nullFloat(out.Score),
		toMillis(out.AppliedAt), toMillis(out.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert candidate %s: %w", out.ID, err)
	}
	sendEvent(r.publisher, out.JobID, out.ID)
	return r.GetCandidate(ctx, out.ID)
}

// GetCandidate returns one candidate or a CANDIDATE_NOT_FOUND error
func (r *Repository) GetCandidate(ctx context.Context, id types.CandidateID) (*models.Candidate, error) {
	return getCandidate(ctx, r.db, id)
}

func getCandidate(ctx context.Context, q querier, id types.CandidateID) (*models.Candidate, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, string(id))
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, candidateNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate %s: %w", id, err)
	}
	return c, nil
}

// ListCandidates returns the candidates of one job, or of every job when
// jobID is empty. Within a stage the most recently moved come first.
func (r *Repository) ListCandidates(ctx context.Context, jobID types.JobID) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	var args []any
	if jobID != "" {
		query += ` WHERE job_id = ?`
		args = append(args, string(jobID))
	}
	query += ` ORDER BY board_rank DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]*models.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

// AssignCandidate sets the candidate's assignee. An empty assignee unassigns.
func (r *Repository) AssignCandidate(ctx context.Context, id types.CandidateID, assignee types.UserID) error {
	var jobID types.JobID
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		c, err := getCandidate(ctx, tx, id)
		if err != nil {
			return err
		}
		jobID = c.JobID
		_, err = tx.ExecContext(ctx,
			`UPDATE candidates SET assigned_to = ?, updated_at = ? WHERE id = ?`,
			nullString(string(assignee)), toMillis(r.now()), string(id),
		)
		if err != nil {
			return fmt.Errorf("failed to assign candidate %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Debug("candidate assigned", "candidate_id", id, "assignee_id", assignee)
	sendEvent(r.publisher, jobID, id)
	return nil
}

// ============================================================================
// Moves
// ============================================================================

// MoveCandidate commits one transition. The request's From must match the
// stored status; the transition must pass the policy. Matching automation
// rules are reported unless the request suppresses them.
func (r *Repository) MoveCandidate(ctx context.Context, req models.MoveRequest) (*models.MoveResult, error) {
	if !req.To.Valid() {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "unknown stage %q", req.To)
	}

	var (
		result *models.MoveResult
		jobID  types.JobID
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		c, err := getCandidate(ctx, tx, req.CandidateID)
		if err != nil {
			return err
		}
		jobID = c.JobID

		if c.Status != req.From {
			return models.NewAPIError(models.CodeInvalidStatusTransition,
				"Candidate is in %s, not %s", c.Status, req.From)
		}
		if err := r.policy.Check(req.From, req.To); err != nil {
			return err
		}

		now := r.now()
		result = &models.MoveResult{
			CandidateID:    req.CandidateID,
			From:           req.From,
			To:             req.To,
			Timestamp:      fromMillis(toMillis(now)),
			TriggeredRules: []types.RuleID{},
		}
		if req.From == req.To {
			return nil
		}

		if !req.SuppressAutomation {
			result.TriggeredRules, err = matchRules(ctx, tx, req.From, req.To)
			if err != nil {
				return err
			}
		}
		return commitMove(ctx, tx, c, req.To, req.Reason, req.MovedBy, result.TriggeredRules, now)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("candidate moved",
		"candidate_id", req.CandidateID,
		"from", req.From,
		"to", req.To,
		"reason", req.Reason,
		"triggered_rules", len(result.TriggeredRules))
	if req.From != req.To {
		sendEvent(r.publisher, jobID, req.CandidateID)
	}
	return result, nil
}

// BulkMoveCandidates moves each candidate in its own transaction, so one
// rejection never blocks the others. A candidate already in the
// destination counts as moved.
func (r *Repository) BulkMoveCandidates(ctx context.Context, req models.BulkMoveRequest) (*models.BulkMoveResult, error) {
	if !req.To.Valid() {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "unknown stage %q", req.To)
	}

	res := &models.BulkMoveResult{
		Success: []models.BulkSuccess{},
		Failed:  []models.BulkFailure{},
	}
	touched := make(map[types.JobID]bool)

	for _, id := range req.CandidateIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		jobID, moved, err := r.bulkMoveOne(ctx, id, req.To, req.MovedBy)
		if err != nil {
			res.Failed = append(res.Failed, models.BulkFailure{CandidateID: id, Error: bulkErrorMessage(err)})
			continue
		}
		if moved {
			touched[jobID] = true
		}
		res.Success = append(res.Success, models.BulkSuccess{CandidateID: id, Status: req.To})
	}

	r.logger.Debug("bulk move committed",
		"to", req.To,
		"succeeded", len(res.Success),
		"failed", len(res.Failed))
	for jobID := range touched {
		sendEvent(r.publisher, jobID, "")
	}
	return res, nil
}

func (r *Repository) bulkMoveOne(ctx context.Context, id types.CandidateID, to models.Stage, movedBy types.UserID) (types.JobID, bool, error) {
	var (
		jobID types.JobID
		moved bool
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		c, err := getCandidate(ctx, tx, id)
		if err != nil {
			return err
		}
		jobID = c.JobID
		if c.Status == to {
			return nil
		}
		if err := r.policy.Check(c.Status, to); err != nil {
			return err
		}
		rules, err := matchRules(ctx, tx, c.Status, to)
		if err != nil {
			return err
		}
		moved = true
		return commitMove(ctx, tx, c, to, models.ReasonBulk, movedBy, rules, r.now())
	})
	return jobID, moved, err
}

func bulkErrorMessage(err error) string {
	if apiErr, ok := models.AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

// commitMove updates the status, puts the candidate at the front of its
// new stage and appends to the move log
func commitMove(ctx context.Context, tx *sql.Tx, c *models.Candidate, to models.Stage,
	reason models.MoveReason, movedBy types.UserID, rules []types.RuleID, now time.Time,
) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE candidates
		 SET status = ?, updated_at = ?,
			board_rank = (SELECT COALESCE(MAX(board_rank), 0) + 1 FROM candidates)
		 WHERE id = ?`,
		string(to), toMillis(now), string(c.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate %s status: %w", c.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stage_moves (candidate_id, from_stage, to_stage, reason, moved_by, triggered_rules, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(c.ID), string(c.Status), string(to), string(reason), string(movedBy),
		joinRules(rules), toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("failed to log move for candidate %s: %w", c.ID, err)
	}
	return nil
}

// ListMoves returns the move log of one candidate, oldest first.
// An empty id returns the whole log.
func (r *Repository) ListMoves(ctx context.Context, id types.CandidateID) ([]*models.MoveRecord, error) {
	query := `SELECT id, candidate_id, from_stage, to_stage, reason, moved_by, triggered_rules, created_at
		FROM stage_moves`
	var args []any
	if id != "" {
		query += ` WHERE candidate_id = ?`
		args = append(args, string(id))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}
	defer rows.Close()

	moves := make([]*models.MoveRecord, 0)
	for rows.Next() {
		var (
			m                            models.MoveRecord
			candID, from, to, reason, by string
			rules                        string
			createdAt                    int64
		)
		if err := rows.Scan(&m.ID, &candID, &from, &to, &reason, &by, &rules, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		m.CandidateID = types.CandidateID(candID)
		m.From = models.Stage(from)
		m.To = models.Stage(to)
		m.Reason = models.MoveReason(reason)
		m.MovedBy = types.UserID(by)
		m.TriggeredRules = splitRules(rules)
		m.At = fromMillis(createdAt)
		moves = append(moves, &m)
	}
	return moves, rows.Err()
}
