package use

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// JobCmd returns the use job subcommand
func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job [job-id]",
		Short: "Set job context for current shell session",
		Long: `Set the current job context using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(hireboard use job job-1)     # Use job-1
  eval $(hireboard use job --clear)   # Clear job context
  hireboard use job --show            # Show current job

HIREBOARD_JOB is set in your current shell session only. The --job flag
on other commands takes precedence over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseJob,
	}

	cmd.Flags().Bool("clear", false, "Clear the current job context")
	cmd.Flags().Bool("show", false, "Show the current job context")

	return cmd
}

func runUseJob(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")

	if clearFlag {
		fmt.Println("unset " + config.JobEnv)
		fmt.Fprintln(os.Stderr, "Cleared job context")
		return nil
	}

	var jobID types.JobID
	switch {
	case showFlag:
		jobID = types.JobID(os.Getenv(config.JobEnv))
		if jobID == "" {
			fmt.Println("No job context set")
			fmt.Println("Use 'eval $(hireboard use job <job-id>)' to set one")
			return nil
		}
	case len(args) == 0:
		return cli.Exit(cli.ExitUsage, errors.New("job ID required\nUsage: eval $(hireboard use job <job-id>)"))
	default:
		jobID = types.JobID(args[0])
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.CloseOrLog()

	job, err := cliInstance.App.Repo().GetJob(cmd.Context(), jobID)
	if showFlag {
		if err != nil {
			fmt.Printf("Current job: %s (job not found)\n", jobID)
			return nil
		}
		fmt.Printf("Current job: %s (%s)\n", job.ID, job.Title)
		return nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: job %s not found\n", jobID)
		fmt.Fprintln(os.Stderr, "Suggestion: Use 'hireboard job list' to see available jobs")
		return cli.Exit(cli.ExitNotFound, err)
	}

	fmt.Printf("export %s=%s\n", config.JobEnv, job.ID)
	fmt.Fprintf(os.Stderr, "Now using job %s: %s\n", job.ID, job.Title)
	return nil
}
