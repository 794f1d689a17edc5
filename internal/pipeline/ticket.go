package pipeline

import (
	"context"
	"sync"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// MoveOutcome is how a requested move resolved.
// Err is a *reconcile.Failure when the service rejected the move.
type MoveOutcome struct {
	CandidateID types.CandidateID
	From        models.Stage
	To          models.Stage
	Result      *models.MoveResult
	Err         error
	Noop        bool
}

// OK reports whether the move was committed or needed no change
func (o MoveOutcome) OK() bool {
	return o.Err == nil
}

// Ticket resolves once with the outcome of an asynchronous request
type Ticket[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
}

func newTicket[T any]() *Ticket[T] {
	return &Ticket[T]{done: make(chan struct{})}
}

func resolvedTicket[T any](v T) *Ticket[T] {
	t := newTicket[T]()
	t.resolve(v)
	return t
}

func (t *Ticket[T]) resolve(v T) {
	t.once.Do(func() {
		t.value = v
		close(t.done)
	})
}

// Done is closed when the ticket resolves
func (t *Ticket[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the ticket resolves or ctx ends
func (t *Ticket[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Value returns the outcome. It is only meaningful after Done is closed.
func (t *Ticket[T]) Value() T {
	<-t.done
	return t.value
}
