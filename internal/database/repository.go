package database

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
)

// Repository is the SQLite persistence service. Every mutating operation
// runs in its own transaction and publishes a board change after commit.
type Repository struct {
	db        *sql.DB
	publisher events.EventPublisher
	policy    *Policy
	now       func() time.Time
	logger    *slog.Logger
}

var (
	_ reconcile.Service = (*Repository)(nil)
	_ DataStore         = (*Repository)(nil)
)

// Option configures a Repository
type Option func(*Repository)

// WithEventPublisher publishes board_changed events on commit
func WithEventPublisher(p events.EventPublisher) Option {
	return func(r *Repository) {
		r.publisher = p
	}
}

// WithPolicy replaces the stage transition policy
func WithPolicy(p *Policy) Option {
	return func(r *Repository) {
		r.policy = p
	}
}

// WithClock overrides time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// NewRepository creates a new Repository wrapping the given database connection
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	r := &Repository{
		db:     db,
		policy: DefaultPolicy(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DB exposes the underlying connection
func (r *Repository) DB() *sql.DB {
	return r.db
}
