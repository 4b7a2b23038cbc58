package realtime

import (
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	rt "github.com/taskpulse/backend/internal/realtime"
	"github.com/taskpulse/backend/internal/store"
)

// Handler terminates one websocket session per connection: it registers the
// session, translates inbound commands into store calls, hands outcomes to
// the hub and deregisters on close.
type Handler struct {
	tasks      store.TaskStore
	registry   *rt.Registry
	hub        *rt.Hub
	sendBuffer int
	upgrader   websocket.Upgrader
}

// New creates the websocket handler.
func New(tasks store.TaskStore, registry *rt.Registry, hub *rt.Hub, sendBuffer int) *Handler {
	return &Handler{
		tasks:      tasks,
		registry:   registry,
		hub:        hub,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

// clientIdentity reduces the remote address to its host part. Connections
// from the same host share one identity, so several tabs from one client
// count as a single connected party.
func clientIdentity(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity := clientIdentity(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for %s: %v", identity, err)
		return
	}

	sess := rt.NewSession(identity, h.sendBuffer)
	go sess.WritePump(conn)

	// Session is now open: the new session learns the count first, everyone
	// else follows.
	count := h.registry.Open(sess)
	log.Printf("[ws] session %s opened for %s (%d connected)", sess.ID, identity, count)
	h.hub.SendTo(sess, rt.NewCount(count))
	h.hub.Publish(rt.NewCount(count), sess.ID, rt.ToAllExceptOrigin)

	defer func() {
		remaining := h.registry.Close(sess)
		sess.Close()
		log.Printf("[ws] session %s closed for %s (%d connected)", sess.ID, identity, remaining)
		h.hub.Publish(rt.NewCount(remaining), "", rt.ToAll)
	}()

	for {
		// Explicit close and transport failure look the same here: the read
		// fails and the session winds down.
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.dispatch(r.Context(), sess, data)
	}
}
