package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/testutil"
	clitest "github.com/thenoetrevino/hireboard/internal/testutil/cli"
)

func TestSchedule(t *testing.T) {
	a := clitest.SetupCLITest(t)
	testutil.SeedJob(t, a.Repo(), "job-1", models.StagePhoneScreen, "1", "2")

	output, err := clitest.ExecuteCLICommand(t, a, InterviewCmd(), []string{
		"schedule", "--candidate", "1", "--start", "2024-01-20T14:00:00Z",
		"--with", "user:678,user:910", "--json",
	})
	require.NoError(t, err)
	iv := testutil.ParseJSON(t, output)["interview"].(map[string]any)
	assert.Equal(t, "2024-01-20T15:00:00Z", iv["end"], "default duration is one hour")
	assert.Equal(t, models.DefaultInterviewLocation, iv["location"])
	assert.Equal(t, "job-1", iv["job_id"])

	t.Run("participant conflict", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, InterviewCmd(), []string{
			"schedule", "--candidate", "2", "--start", "2024-01-20T14:30:00Z",
			"--with", "user:910", "--json",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
		errData := testutil.ParseJSON(t, output)["error"].(map[string]any)
		assert.Equal(t, models.CodeSchedulingConflict, errData["code"])
	})

	t.Run("back to back is fine", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, a, InterviewCmd(), []string{
			"schedule", "--candidate", "2", "--start", "2024-01-20T15:00:00Z", "--with", "user:910",
		})
		require.NoError(t, err)
	})

	t.Run("bad times", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, a, InterviewCmd(), []string{
			"schedule", "--candidate", "2", "--start", "soon",
		})
		assert.Equal(t, cli.ExitDataErr, cli.ExitCodeFor(err))

		_, err = clitest.ExecuteCLICommand(t, a, InterviewCmd(), []string{
			"schedule", "--candidate", "2", "--start", "2024-01-20T15:00:00Z", "--end", "2024-01-20T14:00:00Z",
		})
		assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
	})

	output, err = clitest.ExecuteCLICommand(t, a, InterviewCmd(), []string{"list", "--quiet"})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(output), 2)
}
