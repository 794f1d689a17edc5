package database

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/hireboard/internal/events"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs the real migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, runMigrations(context.Background(), db))
	return db
}

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *Repository
	db        *sql.DB
	publisher *recordingPublisher
}

// newFixture returns a repository holding job-1 with candidates 1, 2, 3 in
// Applied and 4 in Screening
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	pub := &recordingPublisher{}
	repo := NewRepository(db,
		WithClock(func() time.Time { return testNow }),
		WithEventPublisher(pub))

	ctx := context.Background()
	_, err := repo.CreateJob(ctx, &models.Job{ID: "job-1", Title: "Backend Engineer"})
	require.NoError(t, err)
	seed := []struct {
		id     types.CandidateID
		name   string
		status models.Stage
	}{
		{"1", "Sarah Johnson", models.StageApplied},
		{"2", "Michael Chen", models.StageApplied},
		{"3", "Emily Rodriguez", models.StageApplied},
		{"4", "David Kim", models.StageScreening},
	}
	for _, s := range seed {
		_, err := repo.CreateCandidate(ctx, &models.Candidate{
			ID: s.id, Name: s.name, Status: s.status, JobID: "job-1",
		})
		require.NoError(t, err)
	}
	pub.reset()
	return &fixture{repo: repo, db: db, publisher: pub}
}

func (f *fixture) status(t *testing.T, id types.CandidateID) models.Stage {
	t.Helper()
	c, err := f.repo.GetCandidate(context.Background(), id)
	require.NoError(t, err)
	return c.Status
}

// recordingPublisher captures events instead of sending them to a daemon
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	// rejects the next n sends with a full queue
	reject int
}

func (p *recordingPublisher) Connect(context.Context) error { return nil }

func (p *recordingPublisher) SendEvent(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reject > 0 {
		p.reject--
		return events.ErrQueueFull
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Listen(context.Context) (<-chan events.Event, error) {
	return nil, nil
}

func (p *recordingPublisher) Subscribe(types.JobID) error { return nil }

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) sent() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
