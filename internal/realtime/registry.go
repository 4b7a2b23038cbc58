package realtime

import "sync"

// Registry tracks which sessions are currently open, grouped by client
// identity. The distinct-party count is the number of identities with at
// least one open session, so two tabs from one host count once.
//
// All state lives behind one mutex; no I/O happens under the lock.
type Registry struct {
	mu      sync.Mutex
	parties map[string]map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parties: make(map[string]map[string]*Session)}
}

// Open registers the session under its identity and returns the resulting
// distinct-party count. The count can be stale by the time the caller
// broadcasts it if opens race; each open broadcasts its own count, and the
// last one wins.
func (r *Registry) Open(s *Session) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.parties[s.Identity]
	if !ok {
		set = make(map[string]*Session)
		r.parties[s.Identity] = set
	}
	set[s.ID] = s
	return len(r.parties)
}

// Close deregisters the session and returns the resulting distinct-party
// count. Closing a session that is not registered is a no-op, because abrupt
// disconnects can race with explicit closes.
func (r *Registry) Close(s *Session) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.parties[s.Identity]; ok {
		delete(set, s.ID)
		if len(set) == 0 {
			delete(r.parties, s.Identity)
		}
	}
	return len(r.parties)
}

// CurrentCount returns the number of identities with at least one open
// session.
func (r *Registry) CurrentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parties)
}

// Snapshot returns every open session for broadcast fan-out. Order is
// unspecified.
func (r *Registry) Snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]*Session, 0, len(r.parties))
	for _, set := range r.parties {
		for _, s := range set {
			sessions = append(sessions, s)
		}
	}
	return sessions
}
