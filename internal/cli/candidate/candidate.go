// Package candidate implements the candidate subcommands
package candidate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/models"
)

// CandidateCmd returns the candidate parent command
func CandidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "candidate",
		Aliases: []string{"c"},
		Short:   "Manage candidates",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(BulkMoveCmd())
	cmd.AddCommand(AssignCmd())
	cmd.AddCommand(HistoryCmd())

	return cmd
}

func candidateJSON(c *models.Candidate) map[string]any {
	out := map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"email":      c.Email,
		"title":      c.Title,
		"location":   c.Location,
		"status":     c.Status,
		"job_id":     c.JobID,
		"assignee":   c.AssigneeID,
		"applied_at": c.AppliedAt.Format(time.RFC3339),
		"updated_at": c.UpdatedAt.Format(time.RFC3339),
	}
	if c.Phone != "" {
		out["phone"] = c.Phone
	}
	if c.Score != nil {
		out["score"] = *c.Score
	}
	return out
}
