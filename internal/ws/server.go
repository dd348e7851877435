package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	readLimit    = 1024
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Server upgrades HTTP requests into subscriber sessions on the hub.
type Server struct {
	hub      *Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(hub *Hub, logger *zap.Logger) *Server {
	return &Server{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is the HTTP handler for /ws/data. The session is push-only:
// inbound frames are read and discarded to keep the connection alive and to
// notice when the peer goes away.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	session := s.hub.Register(conn)

	go s.pingLoop(conn, session)
	s.readPump(conn, session)
}

func (s *Server) readPump(conn *websocket.Conn, session *Session) {
	defer s.hub.Deregister(session)

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.logger.Debug("subscriber read closed", zap.String("session_id", session.ID()), zap.Error(err))
			return
		}
	}
}

func (s *Server) pingLoop(conn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-session.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(session.writeTimeout)); err != nil {
				return
			}
		}
	}
}
