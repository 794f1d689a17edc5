package events

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// mockHub accepts one connection and forwards decoded messages
func mockHub(t *testing.T) (string, chan Message, chan net.Conn) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "hub.sock")
	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	messages := make(chan Message, 32)
	conns := make(chan net.Conn, 4)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conns <- conn
			go func(c net.Conn) {
				dec := json.NewDecoder(c)
				for {
					var msg Message
					if err := dec.Decode(&msg); err != nil {
						return
					}
					messages <- msg
				}
			}(conn)
		}
	}()
	return socketPath, messages, conns
}

func next(t *testing.T, ch chan Message) Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestConnect_SendsSubscription(t *testing.T) {
	socketPath, messages, _ := mockHub(t)

	c, err := NewClient(socketPath)
	require.NoError(t, err)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	msg := next(t, messages)
	assert.Equal(t, "subscribe", msg.Type)
	assert.Equal(t, ProtocolVersion, msg.Version)
	require.NotNil(t, msg.Subscribe)
	assert.Empty(t, msg.Subscribe.JobID)

	require.NoError(t, c.Subscribe("job-1"))
	msg = next(t, messages)
	assert.Equal(t, types.JobID("job-1"), msg.Subscribe.JobID)
}

func TestSendEvent_BatchesWithinWindow(t *testing.T) {
	t.Setenv("HIREBOARD_EVENT_DEBOUNCE_MS", "50")
	socketPath, messages, _ := mockHub(t)

	c, err := NewClient(socketPath)
	require.NoError(t, err)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	next(t, messages) // subscribe

	require.NoError(t, c.SendEvent(BoardChanged("job-1", "a")))
	require.NoError(t, c.SendEvent(BoardChanged("job-2", "b")))

	msg := next(t, messages)
	assert.Equal(t, "event", msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, EventBoardChanged, msg.Event.Type)
	assert.Empty(t, msg.Event.JobID, "events for several jobs collapse to an all-jobs event")
	assert.Empty(t, msg.Event.CandidateID)

	select {
	case extra := <-messages:
		t.Fatalf("unexpected second message: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestListen_DeduplicatesAndAnswersPing(t *testing.T) {
	socketPath, messages, conns := mockHub(t)

	c, err := NewClient(socketPath)
	require.NoError(t, err)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	next(t, messages)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := c.Listen(ctx)
	require.NoError(t, err)

	server := <-conns
	enc := json.NewEncoder(server)
	ev := BoardChanged("job-1", "a")
	ev.SequenceID = 2
	require.NoError(t, enc.Encode(Message{Version: ProtocolVersion, Type: "event", Event: &ev}))
	stale := ev
	stale.SequenceID = 1
	require.NoError(t, enc.Encode(Message{Version: ProtocolVersion, Type: "event", Event: &stale}))
	require.NoError(t, enc.Encode(Message{Version: ProtocolVersion, Type: "ping"}))

	select {
	case got := <-ch:
		assert.Equal(t, int64(2), got.SequenceID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
	}

	pong := next(t, messages)
	assert.Equal(t, "pong", pong.Type)

	select {
	case got := <-ch:
		t.Fatalf("stale event delivered: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendEvent_AfterClose(t *testing.T) {
	c, err := NewClient(filepath.Join(t.TempDir(), "none.sock"))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Error(t, c.SendEvent(BoardChanged("job", "")))
	assert.NoError(t, c.Close())
}

func TestNewClient_RequiresPath(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestClassifyDaemonError(t *testing.T) {
	assert.Nil(t, ClassifyDaemonError(nil))
	assert.Equal(t, ErrSocketNotFound, ClassifyDaemonError(&net.OpError{Err: os.ErrNotExist}).Code)
	assert.Equal(t, ErrSocketPermission, ClassifyDaemonError(os.ErrPermission).Code)
	assert.Equal(t, ErrConnectionRefused, ClassifyDaemonError(&net.OpError{Err: syscall.ECONNREFUSED}).Code)
	assert.Equal(t, ErrDaemonNotRunning, ClassifyDaemonError(errors.New("other")).Code)
	assert.Contains(t, ClassifyDaemonError(os.ErrPermission).Error(), "chmod 700")
}

func TestSubscribeMessage_Matches(t *testing.T) {
	all := SubscribeMessage{}
	one := SubscribeMessage{JobID: "job-1"}

	assert.True(t, all.Matches("job-2"))
	assert.True(t, one.Matches("job-1"))
	assert.True(t, one.Matches(""))
	assert.False(t, one.Matches("job-2"))
}

type flakyPublisher struct {
	attempts  int
	failUntil int
}

func (f *flakyPublisher) Connect(context.Context) error                { return nil }
func (f *flakyPublisher) Listen(context.Context) (<-chan Event, error) { return nil, nil }
func (f *flakyPublisher) Subscribe(types.JobID) error                  { return nil }
func (f *flakyPublisher) Close() error                                 { return nil }

func (f *flakyPublisher) SendEvent(Event) error {
	f.attempts++
	if f.attempts <= f.failUntil {
		return ErrQueueFull
	}
	return nil
}

func TestPublishWithRetry(t *testing.T) {
	ok := &flakyPublisher{failUntil: 2}
	assert.NoError(t, PublishWithRetry(ok, BoardChanged("job", "a"), 3))
	assert.Equal(t, 3, ok.attempts)

	failing := &flakyPublisher{failUntil: 10}
	assert.ErrorIs(t, PublishWithRetry(failing, BoardChanged("job", "a"), 2), ErrQueueFull)
	assert.Equal(t, 2, failing.attempts)

	assert.NoError(t, PublishWithRetry(nil, Event{}, 3))
}
