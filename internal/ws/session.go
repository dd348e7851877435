package ws

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Conn is the transport subset a session needs for delivery. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Session is one live subscriber. Each session drains its own buffered
// outbound queue in a dedicated write pump, so a stalled peer blocks only
// its own queue. A session holds no history: whatever was broadcast before
// it registered is gone.
type Session struct {
	id           string
	conn         Conn
	send         chan any
	done         chan struct{}
	writeTimeout time.Duration
	logger       *zap.Logger

	mu     sync.Mutex
	closed bool
}

func newSession(id string, conn Conn, buffer int, writeTimeout time.Duration, logger *zap.Logger) *Session {
	return &Session{
		id:           id,
		conn:         conn,
		send:         make(chan any, buffer),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Done is closed when the session is torn down, releasing any goroutine
// keeping the transport alive on its behalf.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// enqueue hands a message to the write pump without blocking. It reports
// false when the session is closed or its buffer is full; a full buffer
// means the peer is not keeping up and the session must be dropped.
func (s *Session) enqueue(msg any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

// close marks the session dead, closes the transport and releases the write
// pump. Safe to call more than once.
func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.send)
	close(s.done)
	s.mu.Unlock()

	_ = s.conn.Close()
}

// writePump delivers queued messages until the queue closes or a write
// fails. onFail runs at most once, off the hub lock.
func (s *Session) writePump(onFail func(*Session)) {
	for msg := range s.send {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		if err := s.conn.WriteJSON(msg); err != nil {
			s.logger.Info("subscriber write failed", zap.String("session_id", s.id), zap.Error(err))
			onFail(s)
			return
		}
	}
}
