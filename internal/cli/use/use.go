// Package use holds all cli commands related to setting contextual information
// e.g., hireboard use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

Examples:
  eval $(hireboard use job job-1)     # Use job-1
  eval $(hireboard use job --clear)   # Clear job context
  hireboard use job --show            # Show current job`,
	}

	cmd.AddCommand(JobCmd())

	return cmd
}
