package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"drivemap/internal/models"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultSendBuffer   = 16
)

// chunkMessage is the push frame subscribers receive for every persisted batch.
type chunkMessage struct {
	Type string                `json:"type"`
	Data []*models.Measurement `json:"data"`
}

// Hub owns the set of live subscriber sessions. All membership changes go
// through Register/Deregister under the hub lock; broadcast only enqueues,
// so no subscriber transport is ever touched while the lock is held.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	sendBuffer   int
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewHub builds the subscriber registry.
func NewHub(writeTimeout time.Duration, sendBuffer int, logger *zap.Logger) *Hub {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		sessions:     make(map[string]*Session),
		sendBuffer:   sendBuffer,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Register adds a new subscriber and starts its write pump. There is no
// replay: the session only sees batches broadcast after this call.
func (h *Hub) Register(conn Conn) *Session {
	s := newSession(uuid.NewString(), conn, h.sendBuffer, h.writeTimeout, h.logger)

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()

	go s.writePump(h.Deregister)

	h.logger.Info("subscriber connected", zap.String("session_id", s.id))
	return s
}

// Deregister removes a session and tears down its transport. Calling it for
// a session that is already gone is a no-op.
func (h *Hub) Deregister(s *Session) {
	h.mu.Lock()
	_, present := h.sessions[s.id]
	delete(h.sessions, s.id)
	h.mu.Unlock()

	s.close()

	if present {
		h.logger.Info("subscriber disconnected", zap.String("session_id", s.id))
	}
}

// Broadcast pushes one persisted batch to every currently registered
// session. Delivery is independent per session: a slow or dead subscriber is
// deregistered and the rest are unaffected. Failures never propagate to the
// caller.
func (h *Hub) Broadcast(batch []*models.Measurement) {
	msg := &chunkMessage{Type: "chunk", Data: batch}

	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if !s.enqueue(msg) {
			h.logger.Warn("subscriber not keeping up, dropping", zap.String("session_id", s.id))
			h.Deregister(s)
		}
	}
}

// Len reports the current number of registered sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
