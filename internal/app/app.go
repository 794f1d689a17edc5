// Package app wires hireboard's components together
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/hireboard/internal/config"
	"github.com/thenoetrevino/hireboard/internal/database"
	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/pipeline"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
	"github.com/thenoetrevino/hireboard/internal/types"
	"github.com/thenoetrevino/hireboard/internal/undo"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	cfg *config.Config
	db  *sql.DB

	// Persistence service
	repo *database.Repository

	// Event system for live updates; nil when the daemon is not running
	eventClient events.EventPublisher
	// why eventClient is nil when the daemon is enabled
	daemonErr *events.DaemonError

	// Reconciliation client shared by every session
	client   *reconcile.Client
	registry *prometheus.Registry
	logger   *slog.Logger
}

// New creates a new App around an open database.
// This is the single entry point for creating the application container.
func New(db *sql.DB, cfg *config.Config, opts ...Option) *App {
	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if ac.registry == nil {
		ac.registry = prometheus.NewRegistry()
	}
	if ac.faults == nil {
		ac.faults = reconcile.NoFaults{}
		if cfg.Pipeline.FaultRate > 0 {
			ac.faults = reconcile.NewRandomFaults(cfg.Pipeline.FaultRate, uint64(time.Now().UnixNano()))
		}
	}

	repo := database.NewRepository(db,
		database.WithEventPublisher(ac.eventClient),
		database.WithLogger(ac.logger))

	client := reconcile.NewClient(repo,
		reconcile.WithTimeout(cfg.Pipeline.ReconcileTimeout),
		reconcile.WithFaults(ac.faults),
		reconcile.WithMetrics(reconcile.NewMetrics(ac.registry)),
		reconcile.WithLogger(ac.logger))

	return &App{
		cfg:         cfg,
		db:          db,
		repo:        repo,
		eventClient: ac.eventClient,
		client:      client,
		registry:    ac.registry,
		logger:      ac.logger,
	}
}

// Open initializes the database from cfg and connects to the daemon when
// enabled. A daemon that is not running is not an error.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var daemonErr *events.DaemonError
	if cfg.Daemon.Enabled {
		ec, derr := connectDaemon(ctx, cfg.Daemon.SocketPath)
		if ec != nil {
			opts = append([]Option{WithEventPublisher(ec)}, opts...)
		}
		daemonErr = derr
	}
	a := New(db, cfg, opts...)
	a.daemonErr = daemonErr
	return a, nil
}

// connectDaemon tries the hub once. A nil publisher means the app runs
// without live updates and the DaemonError says why.
func connectDaemon(ctx context.Context, socketPath string) (events.EventPublisher, *events.DaemonError) {
	client, err := events.NewClient(socketPath)
	if err != nil {
		return nil, events.ClassifyDaemonError(err)
	}
	if err := client.Connect(ctx); err != nil {
		derr := events.ClassifyDaemonError(err)
		slog.Info("live updates disabled", "socket", socketPath, "reason", derr.Message, "hint", derr.Hint, "error", err)
		_ = client.Close()
		return nil, derr
	}
	return client, nil
}

// DaemonError explains why live updates are off; nil when connected or
// when the daemon is disabled in config
func (a *App) DaemonError() *events.DaemonError {
	return a.daemonErr
}

// Config returns the effective configuration
func (a *App) Config() *config.Config {
	return a.cfg
}

// Repo returns the persistence service for direct access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Client returns the reconciliation client
func (a *App) Client() *reconcile.Client {
	return a.client
}

// Registry holds the application's prometheus collectors
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Events returns the daemon connection, or nil
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// NewSession opens a board session for one job. An empty job id shows
// every candidate. The session is not loaded; call Refresh.
func (a *App) NewSession(jobID types.JobID, notifier notify.Notifier, opts ...pipeline.SessionOption) *pipeline.Session {
	p := a.cfg.Pipeline
	sessionCfg := pipeline.Config{
		JobID:                  jobID,
		MovedBy:                types.UserID(p.MovedBy),
		RefreshOnFailure:       p.RefreshEnabled(),
		UndoTriggersAutomation: p.UndoTriggersAutomation,
	}
	base := []pipeline.SessionOption{
		pipeline.WithNotifier(notifier),
		pipeline.WithLedger(undo.NewLedger(p.UndoWindow)),
		pipeline.WithSessionLogger(a.logger),
	}
	return pipeline.NewSession(a.client, sessionCfg, append(base, opts...)...)
}

// Close releases the daemon connection and the database
func (a *App) Close() error {
	if a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			a.logger.Warn("failed to close event client", "error", err)
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
