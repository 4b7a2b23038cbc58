package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/taskpulse/backend/internal/model/task"
)

func receiveEvent(t *testing.T, s *Session) Event {
	t.Helper()
	select {
	case data, ok := <-s.send:
		if !ok {
			t.Fatalf("send queue closed")
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatalf("no event received")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, s *Session) {
	t.Helper()
	select {
	case data := <-s.send:
		t.Fatalf("unexpected event: %s", data)
	default:
	}
}

func TestPublishToAllReachesEveryOpenSession(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	a := NewSession("10.0.0.1", 0)
	b := NewSession("10.0.0.2", 0)
	r.Open(a)
	r.Open(b)

	h.Publish(NewDeleted("task-1"), "", ToAll)

	for _, s := range []*Session{a, b} {
		ev := receiveEvent(t, s)
		if ev.Type != EventDeleted {
			t.Fatalf("expected deleted event, got %s", ev.Type)
		}
	}
}

func TestPublishToAllExceptOriginSkipsOriginator(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	origin := NewSession("10.0.0.1", 0)
	other := NewSession("10.0.0.2", 0)
	r.Open(origin)
	r.Open(other)

	h.Publish(NewCount(2), origin.ID, ToAllExceptOrigin)

	ev := receiveEvent(t, other)
	if ev.Type != EventCount {
		t.Fatalf("expected count event, got %s", ev.Type)
	}
	assertNoEvent(t, origin)
}

func TestPublishToOriginOnly(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	origin := NewSession("10.0.0.1", 0)
	other := NewSession("10.0.0.2", 0)
	r.Open(origin)
	r.Open(other)

	h.Publish(NewError("boom"), origin.ID, ToOriginOnly)

	ev := receiveEvent(t, origin)
	if ev.Type != EventError {
		t.Fatalf("expected error event, got %s", ev.Type)
	}
	assertNoEvent(t, other)
}

func TestPublishDeliversExactlyOncePerSession(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	// Two tabs from one host are one party but two recipients.
	a1 := NewSession("10.0.0.1", 0)
	a2 := NewSession("10.0.0.1", 0)
	r.Open(a1)
	r.Open(a2)

	created := task.Task{ID: "task-1", Title: "x", Priority: task.PriorityMedium}
	h.Publish(NewCreated(created), "", ToAll)

	for _, s := range []*Session{a1, a2} {
		ev := receiveEvent(t, s)
		if ev.Type != EventCreated {
			t.Fatalf("expected created event, got %s", ev.Type)
		}
		assertNoEvent(t, s)
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	slow := NewSession("10.0.0.1", 1)
	healthy := NewSession("10.0.0.2", 0)
	r.Open(slow)
	r.Open(healthy)

	// Fill the slow session's queue, then publish twice more. The slow
	// session loses events; the healthy one gets all three.
	h.Publish(NewDeleted("t1"), "", ToAll)
	done := make(chan struct{})
	go func() {
		h.Publish(NewDeleted("t2"), "", ToAll)
		h.Publish(NewDeleted("t3"), "", ToAll)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a full session queue")
	}

	for i := 0; i < 3; i++ {
		if ev := receiveEvent(t, healthy); ev.Type != EventDeleted {
			t.Fatalf("expected deleted event, got %s", ev.Type)
		}
	}
	if len(slow.send) != 1 {
		t.Fatalf("expected exactly one queued event on the slow session, got %d", len(slow.send))
	}
}

func TestPublishToClosedSessionIsDropped(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	closed := NewSession("10.0.0.1", 0)
	open := NewSession("10.0.0.2", 0)
	r.Open(closed)
	r.Open(open)
	closed.Close()

	h.Publish(NewDeleted("t1"), "", ToAll)

	if ev := receiveEvent(t, open); ev.Type != EventDeleted {
		t.Fatalf("expected deleted event, got %s", ev.Type)
	}
}

func TestSessionCloseIsSafeToRepeat(t *testing.T) {
	s := NewSession("10.0.0.1", 0)
	s.Close()
	s.Close()

	if s.Send([]byte("x")) {
		t.Fatalf("send to closed session should report false")
	}
}

func TestSendToDeliversDirectly(t *testing.T) {
	r := NewRegistry()
	h := NewHub(r)

	s := NewSession("10.0.0.1", 0)

	h.SendTo(s, NewCount(1))

	ev := receiveEvent(t, s)
	if ev.Type != EventCount {
		t.Fatalf("expected count event, got %s", ev.Type)
	}
	var payload CountPayload
	raw, _ := json.Marshal(ev.Data)
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode count payload: %v", err)
	}
	if payload.Count != 1 {
		t.Fatalf("expected count 1, got %d", payload.Count)
	}
}
