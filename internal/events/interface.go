package events

import (
	"context"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// EventPublisher sends board changes to the daemon and receives them back
type EventPublisher interface {
	// Connect establishes a connection to the daemon socket
	Connect(ctx context.Context) error

	// SendEvent queues an event to be sent to the daemon
	SendEvent(event Event) error

	// Listen starts listening for events from the daemon
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe narrows delivery to one job; empty means every job
	Subscribe(jobID types.JobID) error

	// Close closes the connection to the daemon and stops all goroutines
	Close() error
}

var _ EventPublisher = (*Client)(nil)
