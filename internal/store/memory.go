package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskpulse/backend/internal/model/assignment"
	"github.com/taskpulse/backend/internal/model/task"
	"github.com/taskpulse/backend/internal/model/user"
)

// MemoryTaskStore implements TaskStore with an in-memory map, suitable for
// development and tests.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]task.Task
}

// NewMemoryTaskStore returns an empty in-memory task store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]task.Task)}
}

// List returns every task matching the filter.
func (s *MemoryTaskStore) List(_ context.Context, filter task.Filter) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Get retrieves a task by identifier.
func (s *MemoryTaskStore) Get(_ context.Context, id string) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, ErrNotFound
	}
	return t, nil
}

// Create stores a new task with a generated id.
func (s *MemoryTaskStore) Create(_ context.Context, in task.CreateInput) (task.Task, error) {
	now := time.Now().UTC()
	t := task.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()

	return t, nil
}

// Replace overwrites every mutable field of an existing task.
func (s *MemoryTaskStore) Replace(_ context.Context, id string, in task.CreateInput) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, ErrNotFound
	}

	t.Title = in.Title
	t.Description = in.Description
	t.Priority = in.Priority
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	t.Completed = false
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return t, nil
}

// Update applies the non-nil fields of the payload to an existing task.
func (s *MemoryTaskStore) Update(_ context.Context, id string, in task.UpdateInput) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, ErrNotFound
	}

	in.Apply(&t)
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return t, nil
}

// Delete removes a task by identifier.
func (s *MemoryTaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// MemoryUserStore implements UserStore with an in-memory map.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]user.User)}
}

func (s *MemoryUserStore) List(_ context.Context, filter user.Filter) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		if filter.Matches(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemoryUserStore) Get(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) Create(_ context.Context, in user.CreateInput) (user.User, error) {
	now := time.Now().UTC()
	u := user.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()

	return u, nil
}

func (s *MemoryUserStore) Replace(_ context.Context, id string, in user.CreateInput) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, ErrNotFound
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Role = in.Role
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

func (s *MemoryUserStore) Update(_ context.Context, id string, in user.UpdateInput) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, ErrNotFound
	}

	in.Apply(&u)
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// MemoryAssignmentStore implements AssignmentStore with an in-memory map.
type MemoryAssignmentStore struct {
	mu          sync.RWMutex
	assignments map[string]assignment.Assignment
}

// NewMemoryAssignmentStore returns an empty in-memory assignment store.
func NewMemoryAssignmentStore() *MemoryAssignmentStore {
	return &MemoryAssignmentStore{assignments: make(map[string]assignment.Assignment)}
}

func (s *MemoryAssignmentStore) List(_ context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]assignment.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryAssignmentStore) Get(_ context.Context, id string) (assignment.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assignments[id]
	if !ok {
		return assignment.Assignment{}, ErrNotFound
	}
	return a, nil
}

func (s *MemoryAssignmentStore) Create(_ context.Context, in assignment.CreateInput) (assignment.Assignment, error) {
	a := assignment.Assignment{
		ID:         uuid.NewString(),
		TaskID:     in.TaskID,
		UserID:     in.UserID,
		Note:       in.Note,
		AssignedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.assignments[a.ID] = a
	s.mu.Unlock()

	return a, nil
}

func (s *MemoryAssignmentStore) Replace(_ context.Context, id string, in assignment.CreateInput) (assignment.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[id]
	if !ok {
		return assignment.Assignment{}, ErrNotFound
	}

	a.TaskID = in.TaskID
	a.UserID = in.UserID
	a.Note = in.Note
	s.assignments[id] = a
	return a, nil
}

func (s *MemoryAssignmentStore) Update(_ context.Context, id string, in assignment.UpdateInput) (assignment.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[id]
	if !ok {
		return assignment.Assignment{}, ErrNotFound
	}

	in.Apply(&a)
	s.assignments[id] = a
	return a, nil
}

func (s *MemoryAssignmentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assignments[id]; !ok {
		return ErrNotFound
	}
	delete(s.assignments, id)
	return nil
}
