package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// BulkMoveCmd returns the candidate bulk-move subcommand
func BulkMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk-move ID...",
		Short: "Move several candidates to one stage",
		Long: `Move several candidates to one stage. Each candidate is committed
independently: some may succeed while others are rejected.

Exit status is 0 when every candidate moved, 6 when only some did and
1 when none did.

Examples:
  hireboard candidate bulk-move --to rejected 4 7 9
  hireboard candidate bulk-move --to screening 1,2,3 --json
`,
		RunE: runBulkMove,
		Args: cobra.MinimumNArgs(1),
	}

	cmd.Flags().String("to", "", "Destination stage (required)")
	if err := cmd.MarkFlagRequired("to"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("by", "", "User recorded as making the move")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runBulkMove(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	rawTo, _ := cmd.Flags().GetString("to")
	to, err := models.ParseStage(rawTo)
	if err != nil {
		return formatter.FailWith(cli.ExitValidation, "INVALID_STAGE", err)
	}

	ids := cli.CandidateIDs(args)
	if len(ids) == 0 {
		return formatter.FailWith(cli.ExitUsage, "NO_CANDIDATES", errors.New("no candidate ids given"))
	}

	movedBy, _ := cmd.Flags().GetString("by")
	if movedBy == "" {
		movedBy = cliInstance.App.Config().Pipeline.MovedBy
	}

	result := cliInstance.App.Client().BulkMoveCandidates(ctx, models.BulkMoveRequest{
		CandidateIDs: ids,
		To:           to,
		MovedBy:      types.UserID(movedBy),
	})

	var exitErr error
	switch result.Outcome() {
	case models.BulkPartialSuccess:
		exitErr = cli.Exit(cli.ExitPartial, fmt.Errorf("%d of %d candidates could not be moved", len(result.Failed), len(ids)))
	case models.BulkFullFailure:
		exitErr = cli.Exit(cli.ExitError, errors.New("no candidates could be moved"))
	}

	switch {
	case formatter.Quiet:
		for _, s := range result.Success {
			fmt.Println(s.CandidateID)
		}
	case formatter.JSON:
		if err := json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": result.Outcome() == models.BulkFullSuccess,
			"to":      to,
			"moved":   result.Success,
			"failed":  result.Failed,
		}); err != nil {
			return err
		}
	default:
		fmt.Printf("Moved %d of %d candidates to '%s'\n", len(result.Success), len(ids), to)
		for _, f := range result.Failed {
			fmt.Printf("  ✗ %s: %s\n", f.CandidateID, f.Error)
		}
	}
	return exitErr
}
