package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// publishRetries bounds attempts when the client's outbound queue is full
const publishRetries = 3

// sendEvent publishes a board change if a publisher is configured.
// Errors are logged but not returned (fire-and-forget pattern).
func sendEvent(publisher events.EventPublisher, jobID types.JobID, candidateID types.CandidateID) {
	if publisher == nil {
		return
	}
	if err := events.PublishWithRetry(publisher, events.BoardChanged(jobID, candidateID), publishRetries); err != nil {
		slog.Warn("failed to send board event", "job_id", jobID, "candidate_id", candidateID, "error", err)
	}
}

// Timestamps are stored as unix milliseconds so range comparisons stay in SQL.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func joinRules(ids []types.RuleID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

func splitRules(s string) []types.RuleID {
	if s == "" {
		return []types.RuleID{}
	}
	parts := strings.Split(s, ",")
	ids := make([]types.RuleID, len(parts))
	for i, p := range parts {
		ids[i] = types.RuleID(p)
	}
	return ids
}

// placeholders returns "?, ?, ?" for n arguments
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
