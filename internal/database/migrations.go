package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/hireboard/internal/models"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,

	// board_rank orders candidates inside a stage, most recently moved first
	`CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		assigned_to TEXT,
		score REAL,
		board_rank INTEGER NOT NULL DEFAULT 0,
		applied_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_job_status ON candidates(job_id, status)`,

	`CREATE TABLE IF NOT EXISTS stage_moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		candidate_id TEXT NOT NULL,
		from_stage TEXT NOT NULL,
		to_stage TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		moved_by TEXT NOT NULL DEFAULT '',
		triggered_rules TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stage_moves_candidate ON stage_moves(candidate_id)`,

	`CREATE TABLE IF NOT EXISTS automation_rules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		trigger_on TEXT NOT NULL,
		from_stage TEXT,
		to_stage TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS interviews (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		job_id TEXT NOT NULL,
		start_time INTEGER NOT NULL,
		end_time INTEGER NOT NULL,
		location TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interviews_candidate ON interviews(candidate_id)`,

	`CREATE TABLE IF NOT EXISTS interview_participants (
		interview_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (interview_id, user_id),
		FOREIGN KEY (interview_id) REFERENCES interviews(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_participants_user ON interview_participants(user_id)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		channel TEXT NOT NULL,
		recipients TEXT NOT NULL,
		template TEXT NOT NULL,
		payload TEXT NOT NULL DEFAULT '{}',
		created_at INTEGER NOT NULL
	)`,
}

// DefaultRules are seeded into an empty automation_rules table
var DefaultRules = []models.AutomationRule{
	{ID: "auto-assign-recruiter", Name: "Assign a recruiter", Active: true, On: models.TriggerCandidateMoved, To: stagePtr(models.StageScreening)},
	{ID: "send-confirmation-email", Name: "Send confirmation email", Active: true, On: models.TriggerCandidateMoved, To: stagePtr(models.StageScreening)},
	{ID: "schedule-availability-poll", Name: "Poll availability for phone screen", Active: true, On: models.TriggerCandidateMoved, To: stagePtr(models.StagePhoneScreen)},
}

func stagePtr(s models.Stage) *models.Stage {
	return &s
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM automation_rules`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count automation rules: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, rule := range DefaultRules {
			if err := insertRule(ctx, tx, rule); err != nil {
				return err
			}
		}
		return nil
	})
}
