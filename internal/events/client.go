// Package events connects board sessions to the realtime hub so a change
// committed by one process refreshes every board watching the same job.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// ErrQueueFull is returned by SendEvent when the outbound queue is saturated
var ErrQueueFull = errors.New("event queue full")

// Client is one connection to the realtime hub. Outbound events are
// coalesced within a debounce window; inbound events are deduplicated by
// sequence id. Lost connections are re-dialed with exponential backoff.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	eventQueue chan Event
	debounce   time.Duration
	closed     bool
	started    bool

	maxRetries int
	baseDelay  time.Duration

	jobID        types.JobID
	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc

	batcherDone chan struct{}
	logger      *slog.Logger
}

// NewClient creates a client for the hub at socketPath without dialing it.
// HIREBOARD_EVENT_DEBOUNCE_MS overrides the 100ms batching window.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}

	debounceMs := 100
	if envVal := os.Getenv("HIREBOARD_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
		logger:      slog.Default().With("component", "events"),
	}, nil
}

// Connect dials the hub and re-sends the current subscription
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial hub socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	msg := Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{JobID: c.jobID},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			c.logger.Debug("close after failed subscribe", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	if !c.started {
		c.started = true
		go c.startBatcher()
	}
	return nil
}

// SendEvent queues an event without blocking
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("client closed")
	}
	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher flushes at most one event per debounce tick. Events for
// several jobs inside one window collapse into a single all-jobs event.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var (
		pending   bool
		jobID     types.JobID
		candidate types.CandidateID
	)

	absorb := func(ev Event) {
		if !pending {
			pending = true
			jobID = ev.JobID
			candidate = ev.CandidateID
			return
		}
		if jobID != ev.JobID {
			jobID = ""
		}
		if candidate != ev.CandidateID {
			candidate = ""
		}
	}

	flush := func() {
		if !pending {
			return
		}
		pending = false
		if err := c.sendToSocket(Event{
			Type:        EventBoardChanged,
			JobID:       jobID,
			CandidateID: candidate,
			Timestamp:   time.Now(),
		}); err != nil && !isConnectionError(err) {
			c.logger.Warn("failed to send batched event", "error", err)
		}
	}

	for {
		select {
		case <-c.ctx.Done():
			flush()
			return

		case ev, ok := <-c.eventQueue:
			if !ok {
				flush()
				return
			}
			absorb(ev)

		case <-ticker.C:
			flush()
		}
	}
}

func (c *Client) sendToSocket(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to hub")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	msgType := "event"
	if event.Type == EventPong {
		msgType = "pong"
	}
	return c.encoder.Encode(Message{Version: ProtocolVersion, Type: msgType, Event: &event})
}

// Listen delivers events from the hub on the returned channel, reconnecting
// when the connection drops. The channel closes when ctx ends or
// reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := c.readEvents(ctx, eventChan)
		if err == nil || ctx.Err() != nil {
			return
		}
		c.logger.Info("connection lost, reconnecting", "error", err)
		if !c.reconnect(ctx) {
			c.logger.Warn("giving up on hub", "attempts", c.maxRetries)
			return
		}
	}
}

func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return fmt.Errorf("connection closed")
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil || msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return nil
			}

		case "ping":
			if err := c.sendToSocket(Event{Type: EventPong}); err != nil && !isConnectionError(err) {
				c.logger.Debug("failed to send pong", "error", err)
			}
		}
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "use of closed network connection")
}

// reconnect re-dials with delays of 1s, 2s, 4s, ...
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				_ = c.conn.Close()
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				c.logger.Info("reconnected to hub", "attempt", i+1)
				return true
			}
			delay *= 2
		}
	}
	return false
}

// Subscribe narrows delivery to jobID; empty subscribes to every job.
// The subscription survives reconnects.
func (c *Client) Subscribe(jobID types.JobID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jobID = jobID
	if c.conn == nil {
		return fmt.Errorf("not connected to hub")
	}
	return c.encoder.Encode(Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{JobID: jobID},
	})
}

// Close flushes queued events and disconnects
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	started := c.started
	c.mu.Unlock()

	if started {
		<-c.batcherDone
	}
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
