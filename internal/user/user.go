// Package user resolves the recruiter running the CLI
package user

import (
	"os"
	"os/user"
	"strings"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// Self is the alias accepted wherever a recruiter ID is expected
const Self = "@me"

// CurrentUsername returns the OS username, falling back to $USER and then
// "unknown"
func CurrentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

// Me is the recruiter ID of the person running hireboard
func Me() types.UserID {
	if id := os.Getenv("HIREBOARD_USER"); id != "" {
		return types.UserID(id)
	}
	return types.UserID("user:" + CurrentUsername())
}

// Resolve expands Self to Me and passes other IDs through trimmed
func Resolve(raw string) types.UserID {
	raw = strings.TrimSpace(raw)
	if raw == Self {
		return Me()
	}
	return types.UserID(raw)
}
