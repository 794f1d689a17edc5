package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/testutil"
)

func TestGuide(t *testing.T) {
	cmd := GuideCmd()
	testutil.SetupCobraCommand(cmd, []string{"--raw"})
	output, err := testutil.ExecuteCommand(t, cmd)
	require.NoError(t, err)
	assert.Equal(t, guideContent, output)

	rendered, err := Render(60)
	require.NoError(t, err)
	assert.Contains(t, rendered, "hireboard candidate bulk-move")
	assert.NotContains(t, rendered, "```")
}
