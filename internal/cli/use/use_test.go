package use

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/testutil"
	clitest "github.com/thenoetrevino/hireboard/internal/testutil/cli"
)

func TestUseJob(t *testing.T) {
	a := clitest.SetupCLITest(t)
	testutil.SeedJob(t, a.Repo(), "job-1", models.StageApplied)

	output, err := clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"job", "job-1"})
	require.NoError(t, err)
	assert.Equal(t, "export HIREBOARD_JOB=job-1\n", output)

	_, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"job", "job-9"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	t.Setenv(config.JobEnv, "job-1")
	output, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"job", "--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "Current job: job-1 (Job job-1)")

	output, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"job", "--clear"})
	require.NoError(t, err)
	assert.Equal(t, "unset HIREBOARD_JOB\n", output)
}
