package store

import (
	"context"
	"errors"

	"github.com/taskpulse/backend/internal/model/assignment"
	"github.com/taskpulse/backend/internal/model/task"
	"github.com/taskpulse/backend/internal/model/user"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// TaskStore exposes task-item persistence for both mutation surfaces.
type TaskStore interface {
	List(ctx context.Context, filter task.Filter) ([]task.Task, error)
	Get(ctx context.Context, id string) (task.Task, error)
	Create(ctx context.Context, in task.CreateInput) (task.Task, error)
	// Replace overwrites every mutable field with the create payload.
	Replace(ctx context.Context, id string, in task.CreateInput) (task.Task, error)
	// Update applies only the non-nil fields of the payload.
	Update(ctx context.Context, id string, in task.UpdateInput) (task.Task, error)
	Delete(ctx context.Context, id string) error
}

// UserStore exposes user persistence.
type UserStore interface {
	List(ctx context.Context, filter user.Filter) ([]user.User, error)
	Get(ctx context.Context, id string) (user.User, error)
	Create(ctx context.Context, in user.CreateInput) (user.User, error)
	Replace(ctx context.Context, id string, in user.CreateInput) (user.User, error)
	Update(ctx context.Context, id string, in user.UpdateInput) (user.User, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentStore exposes assignment persistence.
type AssignmentStore interface {
	List(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error)
	Get(ctx context.Context, id string) (assignment.Assignment, error)
	Create(ctx context.Context, in assignment.CreateInput) (assignment.Assignment, error)
	Replace(ctx context.Context, id string, in assignment.CreateInput) (assignment.Assignment, error)
	Update(ctx context.Context, id string, in assignment.UpdateInput) (assignment.Assignment, error)
	Delete(ctx context.Context, id string) error
}
