package realtime

import (
	"time"

	"github.com/taskpulse/backend/internal/model/task"
)

// EventType tags an outbound session event.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
	EventRecords EventType = "records"
	EventCount   EventType = "count"
	EventError   EventType = "error"
)

// Event is one message delivered to a session.
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// DeletedPayload carries the id of a removed task.
type DeletedPayload struct {
	ID string `json:"id"`
}

// CountPayload carries the current distinct-party count.
type CountPayload struct {
	Count int `json:"count"`
}

// ErrorPayload carries a failure message for the originating session.
type ErrorPayload struct {
	Message string `json:"message"`
}

func newEvent(t EventType, data any) Event {
	return Event{Type: t, Data: data, Timestamp: time.Now().UnixMilli()}
}

// NewCreated builds the event for a freshly created task.
func NewCreated(t task.Task) Event { return newEvent(EventCreated, t) }

// NewUpdated builds the event for an updated task.
func NewUpdated(t task.Task) Event { return newEvent(EventUpdated, t) }

// NewDeleted builds the event for a removed task.
func NewDeleted(id string) Event { return newEvent(EventDeleted, DeletedPayload{ID: id}) }

// NewRecords builds the reply to a list command.
func NewRecords(tasks []task.Task) Event { return newEvent(EventRecords, tasks) }

// NewCount builds a connected-party count event.
func NewCount(count int) Event { return newEvent(EventCount, CountPayload{Count: count}) }

// NewError builds an error event for the originating session only.
func NewError(message string) Event { return newEvent(EventError, ErrorPayload{Message: message}) }

// mutation reports whether the event describes a record change, as opposed
// to session bookkeeping. Only mutations cross the relay.
func (e Event) mutation() bool {
	switch e.Type {
	case EventCreated, EventUpdated, EventDeleted:
		return true
	}
	return false
}
