package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/taskpulse/backend/internal/model/task"
	rt "github.com/taskpulse/backend/internal/realtime"
	"github.com/taskpulse/backend/internal/store"
)

// Command actions accepted over the session protocol.
const (
	ActionListAll = "list_all"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
)

type command struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type updatePayload struct {
	ID      string           `json:"id"`
	Updates task.UpdateInput `json:"updates"`
}

type deletePayload struct {
	ID string `json:"id"`
}

// dispatch runs one inbound command. Outcomes go to the hub; failures go
// back to the originating session only and never touch the other sessions.
func (h *Handler) dispatch(ctx context.Context, sess *rt.Session, data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.hub.SendTo(sess, rt.NewError("invalid message"))
		return
	}

	switch cmd.Action {
	case ActionListAll:
		h.handleListAll(ctx, sess)
	case ActionCreate:
		h.handleCreate(ctx, sess, cmd.Data)
	case ActionUpdate:
		h.handleUpdate(ctx, sess, cmd.Data)
	case ActionDelete:
		h.handleDelete(ctx, sess, cmd.Data)
	default:
		h.hub.SendTo(sess, rt.NewError("unknown action: "+cmd.Action))
	}
}

func (h *Handler) handleListAll(ctx context.Context, sess *rt.Session) {
	tasks, err := h.tasks.List(ctx, task.Filter{})
	if err != nil {
		log.Printf("[ws] list tasks for session %s: %v", sess.ID, err)
		h.hub.SendTo(sess, rt.NewError("failed to list tasks"))
		return
	}
	h.hub.SendTo(sess, rt.NewRecords(tasks))
}

func (h *Handler) handleCreate(ctx context.Context, sess *rt.Session, data []byte) {
	var in task.CreateInput
	if err := json.Unmarshal(data, &in); err != nil {
		h.hub.SendTo(sess, rt.NewError("invalid create payload"))
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		h.hub.SendTo(sess, rt.NewError(errs[0]))
		return
	}

	t, err := h.tasks.Create(ctx, in)
	if err != nil {
		log.Printf("[ws] create task for session %s: %v", sess.ID, err)
		h.hub.SendTo(sess, rt.NewError("failed to create task"))
		return
	}

	ev := rt.NewCreated(t)
	h.hub.SendTo(sess, ev)
	h.hub.Publish(ev, sess.ID, rt.ToAllExceptOrigin)
}

func (h *Handler) handleUpdate(ctx context.Context, sess *rt.Session, data []byte) {
	var p updatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.hub.SendTo(sess, rt.NewError("invalid update payload"))
		return
	}
	if p.ID == "" {
		h.hub.SendTo(sess, rt.NewError("id: is required"))
		return
	}
	if errs := p.Updates.Validate(); len(errs) > 0 {
		h.hub.SendTo(sess, rt.NewError(errs[0]))
		return
	}

	t, err := h.tasks.Update(ctx, p.ID, p.Updates)
	if errors.Is(err, store.ErrNotFound) {
		h.hub.SendTo(sess, rt.NewError("task not found"))
		return
	}
	if err != nil {
		log.Printf("[ws] update task for session %s: %v", sess.ID, err)
		h.hub.SendTo(sess, rt.NewError("failed to update task"))
		return
	}

	ev := rt.NewUpdated(t)
	h.hub.SendTo(sess, ev)
	h.hub.Publish(ev, sess.ID, rt.ToAllExceptOrigin)
}

func (h *Handler) handleDelete(ctx context.Context, sess *rt.Session, data []byte) {
	var p deletePayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.hub.SendTo(sess, rt.NewError("invalid delete payload"))
		return
	}
	if p.ID == "" {
		h.hub.SendTo(sess, rt.NewError("id: is required"))
		return
	}

	err := h.tasks.Delete(ctx, p.ID)
	if errors.Is(err, store.ErrNotFound) {
		h.hub.SendTo(sess, rt.NewError("task not found"))
		return
	}
	if err != nil {
		log.Printf("[ws] delete task for session %s: %v", sess.ID, err)
		h.hub.SendTo(sess, rt.NewError("failed to delete task"))
		return
	}

	ev := rt.NewDeleted(p.ID)
	h.hub.SendTo(sess, ev)
	h.hub.Publish(ev, sess.ID, rt.ToAllExceptOrigin)
}
