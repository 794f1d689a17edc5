package candidate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/board"
	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// ListCmd returns the candidate list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates grouped by stage",
		Long: `List candidates grouped by stage, most recently moved first.

Examples:
  hireboard candidate list --job job-1
  hireboard candidate list --job job-1 --stage screening --json
`,
		RunE: runList,
	}

	cmd.Flags().String("job", "", "Job ID (defaults to $HIREBOARD_JOB, else every job)")
	cmd.Flags().String("stage", "", "Only show this stage")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	jobID, _ := cmd.Flags().GetString("job")
	if jobID == "" {
		jobID = cliInstance.App.Config().Pipeline.JobID
	}
	stageRaw, _ := cmd.Flags().GetString("stage")

	var only models.Stage
	if stageRaw != "" {
		if only, err = models.ParseStage(stageRaw); err != nil {
			return formatter.FailWith(cli.ExitValidation, "INVALID_STAGE", err)
		}
	}

	candidates, err := cliInstance.App.Client().Refresh(ctx, types.JobID(jobID))
	if err != nil {
		return formatter.Fail(err)
	}

	snap := board.FromCandidates(candidates)
	var columns []models.Column
	for _, col := range snap.Columns() {
		if only == "" || col.ID == only {
			columns = append(columns, col)
		}
	}

	if formatter.Quiet {
		for _, col := range columns {
			for _, c := range col.Candidates {
				fmt.Println(c.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		out := make([]map[string]any, 0, len(columns))
		for _, col := range columns {
			list := make([]map[string]any, 0, len(col.Candidates))
			for i := range col.Candidates {
				list = append(list, candidateJSON(&col.Candidates[i]))
			}
			out = append(out, map[string]any{"stage": col.ID, "candidates": list})
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"columns": out,
		})
	}

	total := 0
	for _, col := range columns {
		total += len(col.Candidates)
	}
	if total == 0 {
		fmt.Println("No candidates found")
		return nil
	}

	fmt.Printf("Found %d candidates:\n", total)
	for _, col := range columns {
		if len(col.Candidates) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d)\n", col.Title, len(col.Candidates))
		for _, c := range col.Candidates {
			fmt.Printf("  [%s] %s\n", c.ID, c.Name)
		}
	}
	return nil
}
