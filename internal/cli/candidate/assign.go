package candidate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/user"
)

// AssignCmd returns the candidate assign subcommand
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a candidate to a recruiter",
		Long: `Assign a candidate to a recruiter. An empty --to clears the assignee and
"@me" assigns the candidate to you ($HIREBOARD_USER, else user:<login>).

Examples:
  hireboard candidate assign --id 1 --to user:678
  hireboard candidate assign --id 1 --to @me
  hireboard candidate assign --id 1 --to ""
`,
		RunE: runAssign,
	}

	cmd.Flags().String("id", "", "Candidate ID (required)")
	cmd.Flags().String("to", "", "Assignee user ID (required, empty to unassign)")
	for _, name := range []string{"id", "to"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAssign(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	rawID, _ := cmd.Flags().GetString("id")
	rawAssignee, _ := cmd.Flags().GetString("to")
	id := types.CandidateID(rawID)
	assignee := user.Resolve(rawAssignee)

	if err := cliInstance.App.Client().AssignCandidate(ctx, id, assignee); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(id)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":      true,
			"candidate_id": id,
			"assignee":     assignee,
		})
	}
	if assignee == "" {
		fmt.Printf("Candidate %s unassigned\n", id)
		return nil
	}
	fmt.Printf("Candidate %s assigned to %s\n", id, assignee)
	return nil
}
