package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"board", "candidate", "job", "interview", "notification", "rule", "use", "seed", "guide"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	assert.NotNil(t, root.Flags().Lookup("job"), "bare hireboard accepts the board's flags")
	assert.NotNil(t, root.RunE)
}
