package ws

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"drivemap/internal/models"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []*chunkMessage
	writeErr error
	closed   bool
	block    chan struct{} // non-nil makes WriteJSON block until closed
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return f.writeErr
	}
	if msg, ok := v.(*chunkMessage); ok {
		f.messages = append(f.messages, msg)
	}
	return nil
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error {
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) setWriteErr(err error) {
	f.mu.Lock()
	f.writeErr = err
	f.mu.Unlock()
}

func (f *fakeConn) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeConn) firstIDAt(index int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.messages) || len(f.messages[index].Data) == 0 {
		return -1
	}
	return f.messages[index].Data[0].ID
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func batchWithIDs(ids ...int64) []*models.Measurement {
	batch := make([]*models.Measurement, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, &models.Measurement{ID: id})
	}
	return batch
}

func TestBroadcastFanOut(t *testing.T) {
	hub := NewHub(time.Second, 16, zap.NewNop())

	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		hub.Register(c)
	}

	hub.Broadcast(batchWithIDs(1, 2))
	hub.Broadcast(batchWithIDs(3, 4))

	for _, c := range conns {
		conn := c
		waitFor(t, "both batches delivered", func() bool { return conn.messageCount() == 2 })
		if conn.firstIDAt(0) != 1 || conn.firstIDAt(1) != 3 {
			t.Fatalf("batches delivered out of order: %d then %d", conn.firstIDAt(0), conn.firstIDAt(1))
		}
	}
}

func TestFailedSessionIsDeregistered(t *testing.T) {
	hub := NewHub(time.Second, 16, zap.NewNop())

	healthy := &fakeConn{}
	broken := &fakeConn{}
	broken.setWriteErr(errors.New("connection reset"))

	hub.Register(healthy)
	hub.Register(broken)

	hub.Broadcast(batchWithIDs(1))
	waitFor(t, "broken session dropped", func() bool { return hub.Len() == 1 })

	hub.Broadcast(batchWithIDs(2))
	waitFor(t, "healthy session kept receiving", func() bool { return healthy.messageCount() == 2 })

	if !broken.isClosed() {
		t.Fatal("failed session transport must be closed")
	}
	if broken.messageCount() != 0 {
		t.Fatalf("failed session received %d messages", broken.messageCount())
	}
}

func TestDeregisterIsIdempotent(t *testing.T) {
	hub := NewHub(time.Second, 16, zap.NewNop())

	s := hub.Register(&fakeConn{})
	hub.Deregister(s)
	hub.Deregister(s)

	if hub.Len() != 0 {
		t.Fatalf("expected empty hub, got %d sessions", hub.Len())
	}
}

func TestDeregisterReleasesWaiters(t *testing.T) {
	hub := NewHub(time.Second, 16, zap.NewNop())

	s := hub.Register(&fakeConn{})

	select {
	case <-s.Done():
		t.Fatal("done must stay open while the session lives")
	default:
	}

	hub.Deregister(s)

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("deregister must close the session's done channel promptly")
	}
}

func TestStalledSessionDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(100*time.Millisecond, 1, zap.NewNop())

	release := make(chan struct{})
	defer close(release)

	stalled := &fakeConn{block: release}
	fast := &fakeConn{}

	hub.Register(stalled)
	hub.Register(fast)

	// buffer of one: the stalled pump blocks on the first write, the
	// second batch fills its queue and the third overflows, dropping it
	hub.Broadcast(batchWithIDs(1))
	waitFor(t, "fast session got batch 1", func() bool { return fast.messageCount() == 1 })
	hub.Broadcast(batchWithIDs(2))
	waitFor(t, "fast session got batch 2", func() bool { return fast.messageCount() == 2 })
	hub.Broadcast(batchWithIDs(3))

	waitFor(t, "stalled session dropped", func() bool { return hub.Len() == 1 })
	waitFor(t, "fast session got every batch", func() bool { return fast.messageCount() == 3 })

	if fast.firstIDAt(0) != 1 || fast.firstIDAt(1) != 2 || fast.firstIDAt(2) != 3 {
		t.Fatal("fast session batches out of order")
	}
}

func TestLateSessionGetsNoReplay(t *testing.T) {
	hub := NewHub(time.Second, 16, zap.NewNop())

	early := &fakeConn{}
	hub.Register(early)
	hub.Broadcast(batchWithIDs(1))

	waitFor(t, "early session delivery", func() bool { return early.messageCount() == 1 })

	late := &fakeConn{}
	hub.Register(late)
	hub.Broadcast(batchWithIDs(2))

	waitFor(t, "late session delivery", func() bool { return late.messageCount() == 1 })
	if late.firstIDAt(0) != 2 {
		t.Fatalf("late session must only see batches after joining, saw id %d", late.firstIDAt(0))
	}
}
