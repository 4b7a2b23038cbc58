package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultSendBuffer is the per-session outbound queue size used when the
// configuration does not override it.
const DefaultSendBuffer = 64

// Session is one open bidirectional connection. The registry owns its
// lifetime; the hub only pushes onto its send queue.
type Session struct {
	ID string
	// Identity is the transport-level grouping key (the client host).
	// Several sessions from one host share one identity.
	Identity string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// NewSession allocates a session with a fresh id and a buffered send queue.
func NewSession(identity string, buffer int) *Session {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Session{
		ID:       uuid.NewString(),
		Identity: identity,
		send:     make(chan []byte, buffer),
	}
}

// Send queues data without blocking. It reports false when the session is
// closed or its queue is full; the caller drops the event in both cases.
func (s *Session) Send(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

// Close shuts the send queue, terminating the write pump. Safe to call more
// than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

// WritePump drains the send queue onto the connection until the queue closes
// or a write fails. Runs as the session's single writer goroutine.
func (s *Session) WritePump(conn *websocket.Conn) {
	defer conn.Close()
	for msg := range s.send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
