package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	assignmentHandler "github.com/taskpulse/backend/internal/handler/assignment"
	realtimeHandler "github.com/taskpulse/backend/internal/handler/realtime"
	taskHandler "github.com/taskpulse/backend/internal/handler/task"
	userHandler "github.com/taskpulse/backend/internal/handler/user"
	middlewarePkg "github.com/taskpulse/backend/internal/middleware"
	"github.com/taskpulse/backend/internal/realtime"
	"github.com/taskpulse/backend/internal/store"
	"github.com/taskpulse/backend/pkg/utils"
)

// Stores bundles the record stores the handlers work against.
type Stores struct {
	Tasks       store.TaskStore
	Users       store.UserStore
	Assignments store.AssignmentStore
}

// NewRouter wires HTTP routes to the stores and the realtime layer.
func NewRouter(stores Stores, registry *realtime.Registry, hub *realtime.Hub, sendBuffer int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	tasks := taskHandler.New(stores.Tasks, hub)
	users := userHandler.New(stores.Users)
	assignments := assignmentHandler.New(stores.Assignments, stores.Tasks, stores.Users)
	sessions := realtimeHandler.New(stores.Tasks, registry, hub, sendBuffer)

	r.Route("/api", func(api chi.Router) {
		tasks.RegisterRoutes(api)
		users.RegisterRoutes(api)
		assignments.RegisterRoutes(api)
		sessions.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondData(w, http.StatusOK, map[string]any{
				"status":      "ok",
				"connections": registry.CurrentCount(),
			})
		})
	})

	return r
}
