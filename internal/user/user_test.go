package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/hireboard/internal/types"
)

func TestCurrentUsername(t *testing.T) {
	assert.NotEmpty(t, CurrentUsername())
}

func TestMe(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("HIREBOARD_USER", "user:42")
		assert.Equal(t, types.UserID("user:42"), Me())
	})

	t.Run("derived from username", func(t *testing.T) {
		t.Setenv("HIREBOARD_USER", "")
		assert.Equal(t, types.UserID("user:"+CurrentUsername()), Me())
	})
}

func TestResolve(t *testing.T) {
	t.Setenv("HIREBOARD_USER", "user:42")

	tests := []struct {
		in   string
		want types.UserID
	}{
		{"@me", "user:42"},
		{" @me ", "user:42"},
		{"user:7", "user:7"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}
