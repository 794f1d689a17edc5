// Package job implements the job subcommands
package job

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// JobCmd returns the job parent command
func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}

// CreateCmd returns the job create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new job",
		Long: `Open a new job. Candidates and boards belong to a job.

Examples:
  hireboard job create --title "Senior Backend Engineer" --department Engineering
  JOB=$(hireboard job create --title "Designer" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Job title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("id", "", "Job ID (generated when empty)")
	cmd.Flags().String("department", "", "Department")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")
	department, _ := cmd.Flags().GetString("department")

	job, err := cliInstance.App.Repo().CreateJob(cmd.Context(), &models.Job{
		ID: types.JobID(id), Title: title, Department: department,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(job.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"job":     jobJSON(job),
		})
	}
	fmt.Printf("✓ Job '%s' created (ID: %s)\n", job.Title, job.ID)
	return nil
}

// ListCmd returns the job list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	jobs, err := cliInstance.App.Repo().ListJobs(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, j := range jobs {
			fmt.Println(j.ID)
		}
		return nil
	}
	if formatter.JSON {
		out := make([]map[string]any, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, jobJSON(j))
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"jobs":    out,
		})
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}
	fmt.Printf("Found %d jobs:\n\n", len(jobs))
	for _, j := range jobs {
		if j.Department != "" {
			fmt.Printf("  [%s] %s (%s)\n", j.ID, j.Title, j.Department)
			continue
		}
		fmt.Printf("  [%s] %s\n", j.ID, j.Title)
	}
	return nil
}

func jobJSON(j *models.Job) map[string]any {
	return map[string]any{
		"id":         j.ID,
		"title":      j.Title,
		"department": j.Department,
		"created_at": j.CreatedAt.Format(time.RFC3339),
	}
}
