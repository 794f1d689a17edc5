// Package cli holds the plumbing shared by hireboard's subcommands:
// app lookup, output formatting, exit codes and argument parsing.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/app"
	"github.com/thenoetrevino/hireboard/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App
	owned bool // App was opened by this CLI and must be closed by it
}

type appKey struct{}

// WithApp attaches an already opened app to ctx. Commands run under such a
// context reuse it instead of opening the database themselves.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// NewCLI opens the database and, when enabled, the daemon connection
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, err
		}
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &CLI{App: a, owned: true}, nil
}

// GetCLIFromContext returns the app attached with WithApp, or opens a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx, nil)
}

// Close releases the app if this CLI opened it
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}

// Start resolves the CLI for cmd and the formatter for its output flags.
// On failure the error has already been reported.
func Start(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := Formatter(cmd)
	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, formatter, formatter.FailWith(ExitError, "INITIALIZATION_ERROR", err)
	}
	return cliInstance, formatter, nil
}

// CloseOrLog closes c, logging instead of returning the error
func (c *CLI) CloseOrLog() {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
