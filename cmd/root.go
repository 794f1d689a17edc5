// Package cmd assembles the hireboard command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/cli/board"
	"github.com/thenoetrevino/hireboard/internal/cli/candidate"
	"github.com/thenoetrevino/hireboard/internal/cli/guide"
	"github.com/thenoetrevino/hireboard/internal/cli/interview"
	"github.com/thenoetrevino/hireboard/internal/cli/job"
	"github.com/thenoetrevino/hireboard/internal/cli/notification"
	"github.com/thenoetrevino/hireboard/internal/cli/rule"
	"github.com/thenoetrevino/hireboard/internal/cli/seed"
	"github.com/thenoetrevino/hireboard/internal/cli/use"
	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/logging"
)

// NewRootCmd builds the full command tree. Running it without a
// subcommand opens the board.
func NewRootCmd() *cobra.Command {
	boardCmd := board.BoardCmd()

	root := &cobra.Command{
		Use:   "hireboard",
		Short: "hireboard - a terminal board for recruitment pipelines",
		Long: `hireboard tracks candidates through a hiring pipeline.

Run it without arguments to open the board, or use the subcommands to
script the same operations. See "hireboard guide" for a walkthrough.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          boardCmd.RunE,
	}
	root.Flags().AddFlagSet(boardCmd.Flags())

	root.AddCommand(
		boardCmd,
		candidate.CandidateCmd(),
		job.JobCmd(),
		interview.InterviewCmd(),
		notification.NotificationCmd(),
		rule.RuleCmd(),
		use.UseCmd(),
		seed.SeedCmd(),
		guide.GuideCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	if cfg, err := config.Load(); err == nil {
		if closer, err := logging.Init(cfg.Logging.Path); err == nil {
			defer closer.Close()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	var exitErr *cli.ExitCodeError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	slog.Debug("command failed", "error", err)
	return cli.ExitCodeFor(err)
}
