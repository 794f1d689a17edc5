package database

import (
	"context"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// DataStore is everything the CLI and board view need from persistence:
// the reconcile.Service operations plus job setup and history queries.
type DataStore interface {
	reconcile.Service

	// Jobs
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, id types.JobID) (*models.Job, error)
	ListJobs(ctx context.Context) ([]*models.Job, error)

	// Candidates
	CreateCandidate(ctx context.Context, c *models.Candidate) (*models.Candidate, error)
	GetCandidate(ctx context.Context, id types.CandidateID) (*models.Candidate, error)

	// Automation
	CreateRule(ctx context.Context, rule models.AutomationRule) error
	SetRuleActive(ctx context.Context, id types.RuleID, active bool) error

	// History
	ListMoves(ctx context.Context, id types.CandidateID) ([]*models.MoveRecord, error)
	ListRules(ctx context.Context) ([]*models.AutomationRule, error)
	ListInterviews(ctx context.Context, id types.CandidateID) ([]*models.Interview, error)
	ListNotifications(ctx context.Context) ([]*models.OutboundNotification, error)
}
