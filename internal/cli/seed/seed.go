// Package seed loads a demo pipeline into the database
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/database"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

var demoJobs = []models.Job{
	{ID: "job-1", Title: "Full Stack Engineering", Department: "Engineering"},
	{ID: "job-2", Title: "Platform and Design", Department: "Product"},
	{ID: "job-3", Title: "Frontend Developer", Department: "Engineering"},
}

var demoCandidates = []models.Candidate{
	{ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@email.com", Title: "Senior Full Stack Developer",
		Location: "San Francisco, CA", Score: score(4.8), AppliedAt: at("2024-01-15T10:00:00Z"),
		Status: models.StageApplied, JobID: "job-1"},
	{ID: "2", Name: "Michael Chen", Email: "m.chen@email.com", Title: "DevOps Engineer",
		Location: "Seattle, WA", Score: score(4.5), AppliedAt: at("2024-01-12T14:30:00Z"),
		Status: models.StageScreening, JobID: "job-2", AssigneeID: "recruiter-1"},
	{ID: "3", Name: "Emily Rodriguez", Email: "emily.r@email.com", Title: "Product Manager",
		Location: "Austin, TX", Score: score(4.9), AppliedAt: at("2024-01-18T09:15:00Z"),
		Status: models.StagePhoneScreen, JobID: "job-1", AssigneeID: "recruiter-2"},
	{ID: "4", Name: "David Kim", Email: "david.kim@email.com", Title: "Frontend Developer",
		Location: "Remote", Score: score(4.2), AppliedAt: at("2024-01-10T16:45:00Z"),
		Status: models.StageTechnicalInterview, JobID: "job-3", AssigneeID: "recruiter-1"},
	{ID: "5", Name: "Lisa Wang", Email: "lisa.wang@email.com", Title: "UX Designer",
		Location: "New York, NY", Score: score(4.7), AppliedAt: at("2024-01-08T11:20:00Z"),
		Status: models.StageFinalist, JobID: "job-2", AssigneeID: "recruiter-3"},
	{ID: "6", Name: "James Wilson", Email: "james.wilson@email.com", Title: "Backend Engineer",
		Location: "Chicago, IL", Score: score(4.4), AppliedAt: at("2024-01-05T13:10:00Z"),
		Status: models.StageOffer, JobID: "job-1", AssigneeID: "recruiter-2"},
}

func score(v float64) *float64 { return &v }

func at(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo pipeline",
		Long: `Load three demo jobs and six candidates spread over the pipeline.
Records that already exist are left alone, so seeding twice is harmless.`,
		RunE: runSeed,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()
	repo := cliInstance.App.Repo()

	jobs, candidates := 0, 0
	for i := range demoJobs {
		if _, err := repo.GetJob(ctx, demoJobs[i].ID); err == nil {
			continue
		} else if !errors.Is(err, database.ErrJobNotFound) {
			return formatter.Fail(err)
		}
		if _, err := repo.CreateJob(ctx, &demoJobs[i]); err != nil {
			return formatter.Fail(err)
		}
		jobs++
	}

	// Created in reverse so the board lists them in the order above
	for i := len(demoCandidates) - 1; i >= 0; i-- {
		c := demoCandidates[i]
		if _, err := repo.GetCandidate(ctx, c.ID); err == nil {
			continue
		} else if !errors.Is(err, database.ErrCandidateNotFound) {
			return formatter.Fail(err)
		}
		if _, err := repo.CreateCandidate(ctx, &c); err != nil {
			return formatter.Fail(err)
		}
		candidates++
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":    true,
			"jobs":       jobs,
			"candidates": candidates,
		})
	}
	fmt.Printf("✓ Seeded %d jobs and %d candidates\n", jobs, candidates)
	return nil
}

// IDs returns the demo candidate ids
func IDs() []types.CandidateID {
	ids := make([]types.CandidateID, len(demoCandidates))
	for i, c := range demoCandidates {
		ids[i] = c.ID
	}
	return ids
}
