package cli

import (
	"context"
	"testing"

	"github.com/thenoetrevino/hireboard/internal/app"
	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/database"
)

// SetupCLITest creates an app over an in-memory database.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles.
func SetupCLITest(t *testing.T) *app.App {
	t.Helper()

	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// EventPublisher is nil; event publishing is tested elsewhere
	appInstance := app.New(db, config.Default())
	t.Cleanup(func() { _ = appInstance.Close() })
	return appInstance
}
