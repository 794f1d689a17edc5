package candidate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/cli/styles"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// ShowCmd returns the candidate show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a candidate with their interviews",
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Candidate ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	rawID, _ := cmd.Flags().GetString("id")
	id := types.CandidateID(rawID)

	c, err := cliInstance.App.Repo().GetCandidate(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}
	interviews, err := cliInstance.App.Repo().ListInterviews(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(c.ID)
		return nil
	}

	if formatter.JSON {
		ivs := make([]map[string]any, 0, len(interviews))
		for _, iv := range interviews {
			ivs = append(ivs, map[string]any{
				"id":           iv.ID,
				"start":        iv.StartTime.Format(time.RFC3339),
				"end":          iv.EndTime.Format(time.RFC3339),
				"location":     iv.Location,
				"participants": iv.Participants,
			})
		}
		out := candidateJSON(c)
		out["interviews"] = ivs
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"candidate": out,
		})
	}

	lines := []string{
		styles.TitleStyle.Render(c.Name) + " " + styles.SubtitleStyle.Render("["+string(c.ID)+"]"),
		styles.Field("Stage", string(c.Status)) + " " + styles.StageChip(c.Status),
		styles.Field("Job", string(c.JobID)),
	}
	if c.Title != "" {
		lines = append(lines, styles.Field("Title", c.Title))
	}
	if c.Email != "" {
		lines = append(lines, styles.Field("Email", c.Email))
	}
	if c.AssigneeID != "" {
		lines = append(lines, styles.Field("Assignee", string(c.AssigneeID)))
	}
	if c.Score != nil {
		lines = append(lines, styles.Field("Score", fmt.Sprintf("%.1f", *c.Score)))
	}
	lines = append(lines, styles.Field("Applied", c.AppliedAt.Local().Format("2006-01-02")))
	if len(interviews) > 0 {
		lines = append(lines, styles.SectionStyle.Render("Interviews"))
		for _, iv := range interviews {
			lines = append(lines, fmt.Sprintf("  %s - %s at %s",
				iv.StartTime.Local().Format("2006-01-02 15:04"), iv.EndTime.Local().Format("15:04"), iv.Location))
		}
	}
	fmt.Println(styles.CardStyle.Render(strings.Join(lines, "\n")))
	return nil
}
