package wshandler

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangbro/missionboard/internal/bus"
)

type fakeConn struct {
	mx      sync.Mutex
	written []any
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.written = append(c.written, v)

	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	<-c.closed

	return 0, nil, errors.New("closed")
}

func (c *fakeConn) SetWriteDeadline(time.Time) error {
	return nil
}

func (c *fakeConn) SetCloseHandler(func(code int, text string) error) {}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })

	return nil
}

func (c *fakeConn) count() int {
	c.mx.Lock()
	defer c.mx.Unlock()

	return len(c.written)
}

func TestPumpEvents(t *testing.T) {
	b := bus.New("test", 10)
	conn := newFakeConn()
	h := NewHandler(slog.Default(), conn, b.Subscribe("client"))

	done := make(chan struct{})
	go func() {
		h.Listen()
		close(done)
	}()

	b.Publish(bus.Event{Type: bus.EventMissionUpdated, ID: 1})
	b.Publish(bus.Event{Type: bus.EventMissionUpdated, ID: 2})

	require.Eventually(t, func() bool { return conn.count() == 2 }, time.Second, time.Millisecond*10)

	conn.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not stop")
	}

	assert.False(t, h.IsActive())
	assert.Equal(t, 0, b.Subscribers())
}
