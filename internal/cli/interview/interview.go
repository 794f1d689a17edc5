// Package interview implements the interview subcommands
package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// InterviewCmd returns the interview parent command
func InterviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Schedule and list interviews",
	}

	cmd.AddCommand(ScheduleCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}

// ScheduleCmd returns the interview schedule subcommand
func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Book an interview with a candidate",
		Long: `Book an interview with a candidate. The booking is refused when it
overlaps another interview of the candidate or of any participant.

Examples:
  hireboard interview schedule --candidate 1 --start "2024-01-20 14:00" \
    --duration 1h --with user:678 --with user:910
  hireboard interview schedule --candidate 1 --start 2024-01-20T14:00:00Z \
    --end 2024-01-20T15:00:00Z --location "Room 4" --json
`,
		RunE: runSchedule,
	}

	cmd.Flags().String("candidate", "", "Candidate ID (required)")
	cmd.Flags().String("start", "", "Start time (required)")
	for _, name := range []string{"candidate", "start"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cmd.Flags().String("end", "", "End time")
	cmd.Flags().Duration("duration", time.Hour, "Length, used when --end is empty")
	cmd.Flags().StringSlice("with", nil, "Participant user IDs")
	cmd.Flags().String("location", "", "Location (defaults to "+models.DefaultInterviewLocation+")")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	candidateID, _ := cmd.Flags().GetString("candidate")
	rawStart, _ := cmd.Flags().GetString("start")
	rawEnd, _ := cmd.Flags().GetString("end")
	duration, _ := cmd.Flags().GetDuration("duration")
	with, _ := cmd.Flags().GetStringSlice("with")
	location, _ := cmd.Flags().GetString("location")

	start, err := cli.ParseTime(rawStart)
	if err != nil {
		return formatter.FailWith(cli.ExitDataErr, "INVALID_TIME", err)
	}
	end := start.Add(duration)
	if rawEnd != "" {
		if end, err = cli.ParseTime(rawEnd); err != nil {
			return formatter.FailWith(cli.ExitDataErr, "INVALID_TIME", err)
		}
	}
	if !end.After(start) {
		return formatter.FailWith(cli.ExitValidation, "INVALID_TIME", errors.New("interview must end after it starts"))
	}

	participants := make([]types.UserID, 0, len(with))
	for _, u := range with {
		participants = append(participants, types.UserID(u))
	}

	iv, err := cliInstance.App.Client().ScheduleInterview(cmd.Context(), models.InterviewRequest{
		CandidateID:  types.CandidateID(candidateID),
		StartTime:    start,
		EndTime:      end,
		Participants: participants,
		Location:     location,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(iv.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"interview": interviewJSON(iv),
		})
	}
	fmt.Printf("✓ Interview %s booked for %s\n", iv.ID, iv.CandidateID)
	fmt.Printf("  %s - %s at %s\n", iv.StartTime.Local().Format("2006-01-02 15:04"),
		iv.EndTime.Local().Format("15:04"), iv.Location)
	return nil
}

// ListCmd returns the interview list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List interviews, earliest first",
		RunE:  runList,
	}
	cmd.Flags().String("candidate", "", "Only this candidate's interviews")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	candidateID, _ := cmd.Flags().GetString("candidate")
	interviews, err := cliInstance.App.Repo().ListInterviews(cmd.Context(), types.CandidateID(candidateID))
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, iv := range interviews {
			fmt.Println(iv.ID)
		}
		return nil
	}
	if formatter.JSON {
		out := make([]map[string]any, 0, len(interviews))
		for _, iv := range interviews {
			out = append(out, interviewJSON(iv))
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":    true,
			"interviews": out,
		})
	}

	if len(interviews) == 0 {
		fmt.Println("No interviews scheduled")
		return nil
	}
	for _, iv := range interviews {
		fmt.Printf("  [%s] %s  %s - %s  %s\n", iv.ID, iv.CandidateID,
			iv.StartTime.Local().Format("2006-01-02 15:04"), iv.EndTime.Local().Format("15:04"), iv.Location)
	}
	return nil
}

func interviewJSON(iv *models.Interview) map[string]any {
	return map[string]any{
		"id":           iv.ID,
		"candidate_id": iv.CandidateID,
		"job_id":       iv.JobID,
		"start":        iv.StartTime.Format(time.RFC3339),
		"end":          iv.EndTime.Format(time.RFC3339),
		"participants": iv.Participants,
		"location":     iv.Location,
	}
}
