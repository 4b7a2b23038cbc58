package assignment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskpulse/backend/internal/model/assignment"
	"github.com/taskpulse/backend/internal/store"
	"github.com/taskpulse/backend/pkg/utils"
)

// Handler serves the assignment REST surface. Creates and replaces verify
// that the referenced task and user exist.
type Handler struct {
	assignments store.AssignmentStore
	tasks       store.TaskStore
	users       store.UserStore
}

// New creates the assignment handler.
func New(assignments store.AssignmentStore, tasks store.TaskStore, users store.UserStore) *Handler {
	return &Handler{assignments: assignments, tasks: tasks, users: users}
}

// RegisterRoutes registers the assignment routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/assignments", h.handleList)
	r.Get("/assignments/{id}", h.handleGet)
	r.Post("/assignments", h.handleCreate)
	r.Put("/assignments/{id}", h.handleReplace)
	r.Patch("/assignments/{id}", h.handleUpdate)
	r.Delete("/assignments/{id}", h.handleDelete)
}

// checkReferents verifies the task and user ids point at existing records.
// Empty ids are skipped; input validation already rejects them where
// required.
func (h *Handler) checkReferents(r *http.Request, taskID, userID string) []string {
	var errs []string
	if taskID != "" {
		if _, err := h.tasks.Get(r.Context(), taskID); errors.Is(err, store.ErrNotFound) {
			errs = append(errs, "taskId: task does not exist")
		} else if err != nil {
			log.Printf("[assignment] check task: %v", err)
			errs = append(errs, "taskId: could not be verified")
		}
	}
	if userID != "" {
		if _, err := h.users.Get(r.Context(), userID); errors.Is(err, store.ErrNotFound) {
			errs = append(errs, "userId: user does not exist")
		} else if err != nil {
			log.Printf("[assignment] check user: %v", err)
			errs = append(errs, "userId: could not be verified")
		}
	}
	return errs
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := assignment.Filter{
		TaskID: r.URL.Query().Get("taskId"),
		UserID: r.URL.Query().Get("userId"),
	}
	assignments, err := h.assignments.List(r.Context(), filter)
	if err != nil {
		log.Printf("[assignment] list: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}
	utils.RespondData(w, http.StatusOK, assignments)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.assignments.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err != nil {
		log.Printf("[assignment] get: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load assignment")
		return
	}
	utils.RespondData(w, http.StatusOK, a)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in assignment.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	errs := in.Validate()
	if len(errs) == 0 {
		errs = h.checkReferents(r, in.TaskID, in.UserID)
	}
	if len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	a, err := h.assignments.Create(r.Context(), in)
	if err != nil {
		log.Printf("[assignment] create: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create assignment")
		return
	}
	utils.RespondData(w, http.StatusCreated, a)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	var in assignment.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	errs := in.Validate()
	if len(errs) == 0 {
		errs = h.checkReferents(r, in.TaskID, in.UserID)
	}
	if len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	a, err := h.assignments.Replace(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err != nil {
		log.Printf("[assignment] replace: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update assignment")
		return
	}
	utils.RespondData(w, http.StatusOK, a)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in assignment.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	errs := in.Validate()
	if len(errs) == 0 {
		var taskID, userID string
		if in.TaskID != nil {
			taskID = *in.TaskID
		}
		if in.UserID != nil {
			userID = *in.UserID
		}
		errs = h.checkReferents(r, taskID, userID)
	}
	if len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	a, err := h.assignments.Update(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err != nil {
		log.Printf("[assignment] update: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update assignment")
		return
	}
	utils.RespondData(w, http.StatusOK, a)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.assignments.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err != nil {
		log.Printf("[assignment] delete: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete assignment")
		return
	}
	utils.RespondData(w, http.StatusOK, map[string]string{"id": id})
}
