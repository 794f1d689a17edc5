package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/testutil"
	clitest "github.com/thenoetrevino/hireboard/internal/testutil/cli"
)

func TestJobCreateAndList(t *testing.T) {
	a := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, a, JobCmd(),
		[]string{"create", "--id", "job-be", "--title", "Backend Engineer", "--department", "Engineering", "--json"})
	require.NoError(t, err)
	result := testutil.ParseJSON(t, output)
	assert.Equal(t, "job-be", result["job"].(map[string]any)["id"])

	output, err = clitest.ExecuteCLICommand(t, a, JobCmd(), []string{"create", "--title", "Designer", "--quiet"})
	require.NoError(t, err)
	assert.Regexp(t, `^job-[0-9a-f-]+\n$`, output)

	output, err = clitest.ExecuteCLICommand(t, a, JobCmd(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, output, "Found 2 jobs")
	assert.Contains(t, output, "[job-be] Backend Engineer (Engineering)")
}
