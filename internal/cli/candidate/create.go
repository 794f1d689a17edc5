package candidate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// CreateCmd returns the candidate create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a candidate to a job",
		Long: `Add a candidate to a job. New candidates start in Applied unless
--stage says otherwise.

Examples:
  hireboard candidate create --job job-1 --name "Sarah Chen" --email sarah@example.com

  # Quiet mode for bash capture
  ID=$(hireboard candidate create --job job-1 --name "Sarah Chen" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("job", "", "Job ID (required)")
	cmd.Flags().String("name", "", "Candidate name (required)")
	for _, name := range []string{"job", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	cmd.Flags().String("id", "", "Candidate ID (generated when empty)")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("title", "", "Current job title")
	cmd.Flags().String("location", "", "Location")
	cmd.Flags().String("stage", string(models.StageApplied), "Initial stage")
	cmd.Flags().Float64("score", 0, "Screening score")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	jobID, _ := cmd.Flags().GetString("job")
	stageRaw, _ := cmd.Flags().GetString("stage")
	stage, err := models.ParseStage(stageRaw)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STAGE", err.Error(),
			"Available stages: "+cli.FormatAvailableStages()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exit(cli.ExitValidation, err)
	}

	if _, err := cliInstance.App.Repo().GetJob(ctx, types.JobID(jobID)); err != nil {
		return formatter.FailWith(cli.ExitNotFound, "JOB_NOT_FOUND", fmt.Errorf("job %s not found", jobID))
	}

	c := &models.Candidate{JobID: types.JobID(jobID), Status: stage}
	id, _ := cmd.Flags().GetString("id")
	c.ID = types.CandidateID(id)
	c.Name, _ = cmd.Flags().GetString("name")
	c.Email, _ = cmd.Flags().GetString("email")
	c.Phone, _ = cmd.Flags().GetString("phone")
	c.Title, _ = cmd.Flags().GetString("title")
	c.Location, _ = cmd.Flags().GetString("location")
	if cmd.Flags().Changed("score") {
		score, _ := cmd.Flags().GetFloat64("score")
		c.Score = &score
	}

	created, err := cliInstance.App.Repo().CreateCandidate(ctx, c)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(created.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"candidate": candidateJSON(created),
		})
	}

	fmt.Printf("✓ Candidate '%s' added (ID: %s)\n", created.Name, created.ID)
	fmt.Printf("  Job: %s\n", created.JobID)
	fmt.Printf("  Stage: %s\n", created.Status)
	return nil
}
