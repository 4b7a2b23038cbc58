package realtime

import (
	"encoding/json"
	"log"
)

// PublishMode selects which open sessions receive a published event.
type PublishMode int

const (
	// ToOriginOnly delivers only to the originating session.
	ToOriginOnly PublishMode = iota
	// ToAllExceptOrigin delivers to every session but the originator, which
	// gets its own acknowledgment event instead.
	ToAllExceptOrigin
	// ToAll delivers to every open session. Used for mutations arriving via
	// the HTTP surface, where no session of origin exists.
	ToAll
)

// Hub fans events out to open sessions. It reads the recipient set from the
// registry at dispatch time and never caches it; delivery is best-effort
// per recipient, so one slow session cannot stall the others.
type Hub struct {
	registry *Registry
	relay    *Relay
}

// NewHub returns a hub broadcasting over the given registry.
func NewHub(registry *Registry) *Hub {
	return &Hub{registry: registry}
}

// SetRelay attaches an optional cross-instance relay. Must be called before
// the server starts accepting sessions.
func (h *Hub) SetRelay(relay *Relay) {
	h.relay = relay
}

// Publish delivers ev to the sessions selected by mode, then forwards
// mutation events to the relay so other instances see them too. originID is
// ignored for ToAll.
func (h *Hub) Publish(ev Event, originID string, mode PublishMode) {
	h.deliver(ev, originID, mode)
	if h.relay != nil && mode != ToOriginOnly && ev.mutation() {
		h.relay.Publish(ev)
	}
}

// SendTo delivers ev directly to one session, bypassing the registry. Used
// for acknowledgments and error events addressed to the originator.
func (h *Hub) SendTo(s *Session, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ws] marshal %s event: %v", ev.Type, err)
		return
	}
	if !s.Send(data) {
		log.Printf("[ws] dropping %s event for session %s", ev.Type, s.ID)
	}
}

// deliver fans out to local sessions only.
func (h *Hub) deliver(ev Event, originID string, mode PublishMode) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ws] marshal %s event: %v", ev.Type, err)
		return
	}

	for _, s := range h.registry.Snapshot() {
		switch mode {
		case ToOriginOnly:
			if s.ID != originID {
				continue
			}
		case ToAllExceptOrigin:
			if s.ID == originID {
				continue
			}
		}
		if !s.Send(data) {
			// Slow or closed recipient: drop this event, never block the
			// broadcast. The client reconciles via list_all on reconnect.
			log.Printf("[ws] dropping %s event for session %s", ev.Type, s.ID)
		}
	}
}
