package candidate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// HistoryCmd returns the candidate history subcommand
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show committed stage moves",
		Long: `Show committed stage moves, oldest first. Without --id every
candidate's moves are listed.`,
		RunE: runHistory,
	}

	cmd.Flags().String("id", "", "Candidate ID")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()

	rawID, _ := cmd.Flags().GetString("id")
	id := types.CandidateID(rawID)
	if id != "" {
		if _, err := cliInstance.App.Repo().GetCandidate(ctx, id); err != nil {
			return formatter.Fail(err)
		}
	}

	moves, err := cliInstance.App.Repo().ListMoves(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, m := range moves {
			fmt.Println(m.ID)
		}
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"moves":   moves,
		})
	}

	if len(moves) == 0 {
		fmt.Println("No moves recorded")
		return nil
	}
	for _, m := range moves {
		line := fmt.Sprintf("%s  %s: %s → %s (%s by %s)",
			m.At.Local().Format("2006-01-02 15:04:05"), m.CandidateID, m.From, m.To, m.Reason, m.MovedBy)
		if len(m.TriggeredRules) > 0 {
			rules := make([]string, len(m.TriggeredRules))
			for i, r := range m.TriggeredRules {
				rules[i] = string(r)
			}
			line += " ⚡ " + strings.Join(rules, ", ")
		}
		fmt.Println(line)
	}
	return nil
}
