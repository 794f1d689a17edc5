package candidate

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

// MoveCmd returns the candidate move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <next|prev|STAGE>",
		Short: "Move a candidate to another stage",
		Long: `Move a candidate to the next or previous stage, or to a stage by name.

The move is rejected when the candidate is no longer in the stage it was
read in (or in --from when given), or when the hiring policy forbids the
transition.

Examples:
  hireboard candidate move --id 1 next
  hireboard candidate move --id 1 "phone screen"
  hireboard candidate move --id 1 --from screening rejected --json
`,
		RunE: runMove,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().String("id", "", "Candidate ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("from", "", "Stage the candidate is expected to be in")
	cmd.Flags().String("by", "", "User recorded as making the move")
	cmd.Flags().Bool("no-automation", false, "Do not trigger automation rules")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	rawID, _ := cmd.Flags().GetString("id")
	id := types.CandidateID(rawID)

	current, err := cliInstance.App.Repo().GetCandidate(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	from := current.Status
	if rawFrom, _ := cmd.Flags().GetString("from"); rawFrom != "" {
		if from, err = models.ParseStage(rawFrom); err != nil {
			return formatter.FailWith(cli.ExitValidation, "INVALID_STAGE", err)
		}
	}

	to, err := cli.ResolveStage(from, args[0])
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STAGE", err.Error(),
			fmt.Sprintf("Candidate is currently in: %s\nAvailable stages: %s",
				current.Status, cli.FormatAvailableStages())); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exit(cli.ExitValidation, err)
	}

	movedBy, _ := cmd.Flags().GetString("by")
	if movedBy == "" {
		movedBy = cliInstance.App.Config().Pipeline.MovedBy
	}
	suppress, _ := cmd.Flags().GetBool("no-automation")

	result, err := cliInstance.App.Client().MoveCandidate(ctx, models.MoveRequest{
		CandidateID:        id,
		From:               from,
		To:                 to,
		Reason:             models.ReasonManual,
		MovedBy:            types.UserID(movedBy),
		SuppressAutomation: suppress,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(id)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":         true,
			"candidate_id":    result.CandidateID,
			"from":            result.From,
			"to":              result.To,
			"timestamp":       result.Timestamp.Format(time.RFC3339Nano),
			"triggered_rules": result.TriggeredRules,
		})
	}

	if result.From == result.To {
		fmt.Printf("%s is already in '%s'\n", current.Name, result.To)
		return nil
	}
	fmt.Printf("%s moved to '%s'\n", current.Name, result.To)
	for _, rule := range result.TriggeredRules {
		fmt.Printf("  ⚡ %s\n", rule)
	}
	return nil
}
