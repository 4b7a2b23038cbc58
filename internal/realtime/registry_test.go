package realtime

import (
	"math/rand"
	"testing"
)

func TestOpenCountsDistinctIdentities(t *testing.T) {
	r := NewRegistry()

	a1 := NewSession("10.0.0.1", 0)
	a2 := NewSession("10.0.0.1", 0)
	b := NewSession("10.0.0.2", 0)

	if count := r.Open(a1); count != 1 {
		t.Fatalf("expected count 1 after first open, got %d", count)
	}
	// Second tab from the same host is still one party.
	if count := r.Open(a2); count != 1 {
		t.Fatalf("expected count 1 after second tab, got %d", count)
	}
	if count := r.Open(b); count != 2 {
		t.Fatalf("expected count 2 after second host, got %d", count)
	}
	if count := r.CurrentCount(); count != 2 {
		t.Fatalf("expected current count 2, got %d", count)
	}
}

func TestCloseRemovesIdentityWhenLastSessionCloses(t *testing.T) {
	r := NewRegistry()

	a1 := NewSession("10.0.0.1", 0)
	a2 := NewSession("10.0.0.1", 0)
	r.Open(a1)
	r.Open(a2)

	if count := r.Close(a1); count != 1 {
		t.Fatalf("expected count 1 while a tab remains, got %d", count)
	}
	if count := r.Close(a2); count != 0 {
		t.Fatalf("expected count 0 after last tab closes, got %d", count)
	}
	if len(r.Snapshot()) != 0 {
		t.Fatalf("expected empty snapshot after all sessions closed")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r := NewRegistry()

	s := NewSession("10.0.0.1", 0)
	r.Open(s)

	first := r.Close(s)
	second := r.Close(s)
	if first != second {
		t.Fatalf("expected same count from repeated close, got %d then %d", first, second)
	}
	if second != 0 {
		t.Fatalf("expected count 0, got %d", second)
	}
}

func TestCloseUnknownSessionIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Open(NewSession("10.0.0.1", 0))

	if count := r.Close(NewSession("10.0.0.9", 0)); count != 1 {
		t.Fatalf("expected count 1 after closing unknown session, got %d", count)
	}
}

func TestSnapshotReturnsEveryOpenSession(t *testing.T) {
	r := NewRegistry()

	sessions := []*Session{
		NewSession("10.0.0.1", 0),
		NewSession("10.0.0.1", 0),
		NewSession("10.0.0.2", 0),
	}
	for _, s := range sessions {
		r.Open(s)
	}

	snapshot := r.Snapshot()
	if len(snapshot) != len(sessions) {
		t.Fatalf("expected %d sessions in snapshot, got %d", len(sessions), len(snapshot))
	}

	seen := make(map[string]bool)
	for _, s := range snapshot {
		seen[s.ID] = true
	}
	for _, s := range sessions {
		if !seen[s.ID] {
			t.Errorf("session %s missing from snapshot", s.ID)
		}
	}
}

// Random open/close sequences from a fixed set of hosts: the count must
// always equal the number of hosts with at least one open session.
func TestCountMatchesDistinctHostsUnderRandomSequences(t *testing.T) {
	hosts := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	rng := rand.New(rand.NewSource(1))

	r := NewRegistry()
	open := make(map[string][]*Session)

	expected := func() int {
		n := 0
		for _, sessions := range open {
			if len(sessions) > 0 {
				n++
			}
		}
		return n
	}

	for i := 0; i < 1000; i++ {
		host := hosts[rng.Intn(len(hosts))]
		if len(open[host]) == 0 || rng.Intn(2) == 0 {
			s := NewSession(host, 0)
			open[host] = append(open[host], s)
			if count := r.Open(s); count != expected() {
				t.Fatalf("step %d: open returned %d, want %d", i, count, expected())
			}
		} else {
			sessions := open[host]
			s := sessions[len(sessions)-1]
			open[host] = sessions[:len(sessions)-1]
			if count := r.Close(s); count != expected() {
				t.Fatalf("step %d: close returned %d, want %d", i, count, expected())
			}
		}
	}
}
