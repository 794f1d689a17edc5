// Package testutil holds helpers shared by package tests
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/database"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout
	return <-outC
}

// ExecuteCommand runs a cobra command and captures its output
func ExecuteCommand(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()

	var executeErr error
	output := CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return output, executeErr
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// SetupCobraCommand sets up a cobra command with args for testing
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}

// SeedJob creates a job and one candidate per id in the given stage.
// Candidates are created in order, so the last id is first in its column.
func SeedJob(t *testing.T, repo database.DataStore, jobID types.JobID, stage models.Stage, ids ...types.CandidateID) {
	t.Helper()

	ctx := context.Background()
	if _, err := repo.GetJob(ctx, jobID); err != nil {
		if _, err := repo.CreateJob(ctx, &models.Job{ID: jobID, Title: "Job " + string(jobID)}); err != nil {
			t.Fatalf("Failed to create job %s: %v", jobID, err)
		}
	}
	for _, id := range ids {
		_, err := repo.CreateCandidate(ctx, &models.Candidate{
			ID: id, Name: "Candidate " + string(id), JobID: jobID, Status: stage,
		})
		if err != nil {
			t.Fatalf("Failed to create candidate %s: %v", id, err)
		}
	}
}
