package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskpulse/backend/internal/model/user"
	"github.com/taskpulse/backend/internal/store"
	"github.com/taskpulse/backend/pkg/utils"
)

// Handler serves the user REST surface. User mutations are not part of the
// task-item event stream, so nothing is broadcast here.
type Handler struct {
	users store.UserStore
}

// New creates the user handler.
func New(users store.UserStore) *Handler {
	return &Handler{users: users}
}

// RegisterRoutes registers the user routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Get("/users/{id}", h.handleGet)
	r.Post("/users", h.handleCreate)
	r.Put("/users/{id}", h.handleReplace)
	r.Patch("/users/{id}", h.handleUpdate)
	r.Delete("/users/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := user.Filter{Role: r.URL.Query().Get("role")}
	users, err := h.users.List(r.Context(), filter)
	if err != nil {
		log.Printf("[user] list: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	utils.RespondData(w, http.StatusOK, users)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Printf("[user] get: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	utils.RespondData(w, http.StatusOK, u)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in user.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	u, err := h.users.Create(r.Context(), in)
	if err != nil {
		log.Printf("[user] create: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	utils.RespondData(w, http.StatusCreated, u)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	var in user.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	u, err := h.users.Replace(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Printf("[user] replace: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	utils.RespondData(w, http.StatusOK, u)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in user.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		utils.RespondValidation(w, errs)
		return
	}

	u, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Printf("[user] update: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	utils.RespondData(w, http.StatusOK, u)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.users.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Printf("[user] delete: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	utils.RespondData(w, http.StatusOK, map[string]string{"id": id})
}
