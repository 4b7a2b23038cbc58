package task

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskpulse/backend/internal/model/task"
	"github.com/taskpulse/backend/internal/realtime"
	"github.com/taskpulse/backend/internal/store"
	"github.com/taskpulse/backend/pkg/utils"
)

// Handler serves the task-item REST surface. Every successful mutation is
// published to the hub before the response is written, so the HTTP and
// session surfaces converge on one event stream.
type Handler struct {
	tasks store.TaskStore
	hub   *realtime.Hub
}

// New creates the task handler.
func New(tasks store.TaskStore, hub *realtime.Hub) *Handler {
	return &Handler{tasks: tasks, hub: hub}
}

// RegisterRoutes registers the task routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/tasks", h.handleList)
	r.Get("/tasks/{id}", h.handleGet)
	r.Post("/tasks", h.handleCreate)
	r.Put("/tasks/{id}", h.handleReplace)
	r.Patch("/tasks/{id}", h.handleUpdate)
	r.Delete("/tasks/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := task.Filter{Priority: r.URL.Query().Get("priority")}
	if filter.Priority != "" && !task.ValidPriority(filter.Priority) {
		utils.RespondValidation(w, []string{"priority: must be one of low, medium, high"})
		return
	}
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondValidation(w, []string{"completed: must be true or false"})
			return
		}
		filter.Completed = &completed
	}

	tasks, err := h.tasks.List(r.Context(), filter)
	if err != nil {
		log.Printf("[task] list: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	utils.RespondData(w, http.StatusOK, tasks)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Printf("[task] get: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	utils.RespondData(w, http.StatusOK, t)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in task.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	t, err := h.tasks.Create(r.Context(), in)
	if err != nil {
		log.Printf("[task] create: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.hub.Publish(realtime.NewCreated(t), "", realtime.ToAll)
	utils.RespondData(w, http.StatusCreated, t)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	var in task.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	t, err := h.tasks.Replace(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Printf("[task] replace: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.hub.Publish(realtime.NewUpdated(t), "", realtime.ToAll)
	utils.RespondData(w, http.StatusOK, t)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in task.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	t, err := h.tasks.Update(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Printf("[task] update: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.hub.Publish(realtime.NewUpdated(t), "", realtime.ToAll)
	utils.RespondData(w, http.StatusOK, t)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.tasks.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Printf("[task] delete: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.hub.Publish(realtime.NewDeleted(id), "", realtime.ToAll)
	utils.RespondData(w, http.StatusOK, map[string]string{"id": id})
}
