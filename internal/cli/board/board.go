// Package board launches the interactive pipeline board
package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/app"
	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/tui/core"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive pipeline board",
		Long: `Open the interactive pipeline board.

Moves show up on the board immediately and are confirmed by the service in
the background; a rejected move slides back and can be retried. With the
daemon running the board also follows changes made by other clients.

Examples:
  hireboard board --job job-1
  HIREBOARD_JOB=job-1 hireboard board
`,
		RunE: runBoard,
	}

	cmd.Flags().String("job", "", "Job ID (defaults to $HIREBOARD_JOB, else every job)")
	return cmd
}

// runner starts the board UI; replaced in tests
var runner = core.Run

func runBoard(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()
	ctx := cmd.Context()
	a := cliInstance.App

	jobID, _ := cmd.Flags().GetString("job")
	if jobID == "" {
		jobID = a.Config().Pipeline.JobID
	}
	if jobID != "" {
		if _, err := a.Repo().GetJob(ctx, types.JobID(jobID)); err != nil {
			return formatter.FailWith(cli.ExitNotFound, "JOB_NOT_FOUND", fmt.Errorf("job %s not found", jobID))
		}
	}

	eventChan := watch(ctx, a, types.JobID(jobID))
	if err := runner(ctx, a, types.JobID(jobID), eventChan); err != nil {
		return formatter.FailWith(cli.ExitError, "BOARD_ERROR", err)
	}
	return nil
}

// watch subscribes to the daemon's changes for jobID. Nil means the board
// runs without live updates.
func watch(ctx context.Context, a *app.App, jobID types.JobID) <-chan events.Event {
	ec := a.Events()
	if ec == nil {
		return nil
	}
	ch, err := ec.Listen(ctx)
	if err != nil {
		slog.Warn("failed to listen for board changes", "error", err)
		return nil
	}
	if err := ec.Subscribe(jobID); err != nil {
		slog.Warn("failed to subscribe to job", "job_id", jobID, "error", err)
	}
	return ch
}
