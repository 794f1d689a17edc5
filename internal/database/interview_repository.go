package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// ScheduleInterview books an interview. It is rejected when the window is
// empty or overlaps another interview of the same candidate or of any
// participant.
func (r *Repository) ScheduleInterview(ctx context.Context, req models.InterviewRequest) (*models.Interview, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "interview must end after it starts")
	}

	participants := uniqueUsers(req.Participants)
	iv := &models.Interview{
		ID:           types.NewInterviewID(),
		CandidateID:  req.CandidateID,
		JobID:        req.JobID,
		StartTime:    fromMillis(toMillis(req.StartTime)),
		EndTime:      fromMillis(toMillis(req.EndTime)),
		Participants: participants,
		Location:     req.Location,
	}
	if iv.Location == "" {
		iv.Location = models.DefaultInterviewLocation
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		c, err := getCandidate(ctx, tx, req.CandidateID)
		if err != nil {
			return err
		}
		if iv.JobID == "" {
			iv.JobID = c.JobID
		}

		conflict, err := findConflict(ctx, tx, iv)
		if err != nil {
			return err
		}
		if conflict != "" {
			return models.NewAPIError(models.CodeSchedulingConflict,
				"Scheduling conflict detected with interview %s", conflict)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO interviews (id, candidate_id, job_id, start_time, end_time, location, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(iv.ID), string(iv.CandidateID), string(iv.JobID),
			toMillis(iv.StartTime), toMillis(iv.EndTime), iv.Location, toMillis(r.now()),
		)
		if err != nil {
			return fmt.Errorf("failed to insert interview: %w", err)
		}
		for _, user := range participants {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO interview_participants (interview_id, user_id) VALUES (?, ?)`,
				string(iv.ID), string(user),
			)
			if err != nil {
				return fmt.Errorf("failed to add participant %s: %w", user, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("interview scheduled",
		"interview_id", iv.ID,
		"candidate_id", iv.CandidateID,
		"participants", len(participants))
	sendEvent(r.publisher, iv.JobID, iv.CandidateID)
	return iv, nil
}

// findConflict returns the id of an overlapping interview, or ""
func findConflict(ctx context.Context, q querier, iv *models.Interview) (types.InterviewID, error) {
	query := `SELECT id FROM interviews
		WHERE start_time < ? AND end_time > ?
		AND (candidate_id = ?`
	args := []any{toMillis(iv.EndTime), toMillis(iv.StartTime), string(iv.CandidateID)}
	if len(iv.Participants) > 0 {
		query += ` OR id IN (SELECT interview_id FROM interview_participants WHERE user_id IN (` +
			placeholders(len(iv.Participants)) + `))`
		for _, p := range iv.Participants {
			args = append(args, string(p))
		}
	}
	query += `) ORDER BY start_time LIMIT 1`

	var id string
	err := q.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check interview conflicts: %w", err)
	}
	return types.InterviewID(id), nil
}

// ListInterviews returns the interviews of one candidate by start time.
// An empty id returns every interview.
func (r *Repository) ListInterviews(ctx context.Context, id types.CandidateID) ([]*models.Interview, error) {
	query := `SELECT id, candidate_id, job_id, start_time, end_time, location FROM interviews`
	var args []any
	if id != "" {
		query += ` WHERE candidate_id = ?`
		args = append(args, string(id))
	}
	query += ` ORDER BY start_time, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]*models.Interview, 0)
	for rows.Next() {
		var (
			iv                models.Interview
			ivID, candID, job string
			start, end        int64
		)
		if err := rows.Scan(&ivID, &candID, &job, &start, &end, &iv.Location); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		iv.ID = types.InterviewID(ivID)
		iv.CandidateID = types.CandidateID(candID)
		iv.JobID = types.JobID(job)
		iv.StartTime = fromMillis(start)
		iv.EndTime = fromMillis(end)
		interviews = append(interviews, &iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interviews: %w", err)
	}
	rows.Close()

	for _, iv := range interviews {
		iv.Participants, err = listParticipants(ctx, r.db, iv.ID)
		if err != nil {
			return nil, err
		}
	}
	return interviews, nil
}

func listParticipants(ctx context.Context, q querier, id types.InterviewID) ([]types.UserID, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT user_id FROM interview_participants WHERE interview_id = ? ORDER BY rowid`, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of %s: %w", id, err)
	}
	defer rows.Close()

	users := make([]types.UserID, 0)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		users = append(users, types.UserID(u))
	}
	return users, rows.Err()
}

func uniqueUsers(in []types.UserID) []types.UserID {
	seen := make(map[types.UserID]bool, len(in))
	out := make([]types.UserID, 0, len(in))
	for _, u := range in {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
