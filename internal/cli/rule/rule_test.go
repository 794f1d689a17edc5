package rule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/testutil"
	clitest "github.com/thenoetrevino/hireboard/internal/testutil/cli"
	"github.com/thenoetrevino/hireboard/internal/types"
)

func TestRules(t *testing.T) {
	a := clitest.SetupCLITest(t)
	ctx := context.Background()
	testutil.SeedJob(t, a.Repo(), "job-1", models.StageTechnicalInterview, "1")

	output, err := clitest.ExecuteCLICommand(t, a, RuleCmd(), []string{"list", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "auto-assign-recruiter\nsend-confirmation-email\nschedule-availability-poll\n", output)

	_, err = clitest.ExecuteCLICommand(t, a, RuleCmd(), []string{
		"create", "--id", "notify-hm", "--name", "Notify hiring manager", "--to", "finalist",
	})
	require.NoError(t, err)

	res, err := a.Client().MoveCandidate(ctx, models.MoveRequest{
		CandidateID: "1", From: models.StageTechnicalInterview, To: models.StageFinalist,
	})
	require.NoError(t, err)
	assert.Equal(t, []types.RuleID{"notify-hm"}, res.TriggeredRules)

	_, err = clitest.ExecuteCLICommand(t, a, RuleCmd(), []string{"disable", "notify-hm"})
	require.NoError(t, err)

	_, err = a.Client().MoveCandidate(ctx, models.MoveRequest{
		CandidateID: "1", From: models.StageFinalist, To: models.StageTechnicalInterview,
	})
	require.NoError(t, err)
	res, err = a.Client().MoveCandidate(ctx, models.MoveRequest{
		CandidateID: "1", From: models.StageTechnicalInterview, To: models.StageFinalist,
	})
	require.NoError(t, err)
	assert.Empty(t, res.TriggeredRules)

	_, err = clitest.ExecuteCLICommand(t, a, RuleCmd(), []string{"enable", "missing"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, a, RuleCmd(), []string{"create", "--id", "x", "--name", "x", "--from", "nowhere"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}
