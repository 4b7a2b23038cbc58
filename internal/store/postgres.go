package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskpulse/backend/internal/model/task"
)

const taskSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	priority    TEXT NOT NULL DEFAULT 'medium',
	completed   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
)`

// PostgresTaskStore implements TaskStore on a pgx connection pool.
type PostgresTaskStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskStore connects to url and ensures the tasks table exists.
func NewPostgresTaskStore(ctx context.Context, url string) (*PostgresTaskStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, taskSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure tasks table: %w", err)
	}
	return &PostgresTaskStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresTaskStore) Close() {
	s.pool.Close()
}

const taskColumns = "id, title, description, priority, completed, created_at, updated_at"

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return task.Task{}, ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}

// List returns every task matching the filter, newest first.
func (s *PostgresTaskStore) List(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks"
	var conds []string
	var args []any
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		conds = append(conds, fmt.Sprintf("completed = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get retrieves a task by identifier.
func (s *PostgresTaskStore) Get(ctx context.Context, id string) (task.Task, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	return scanTask(row)
}

// Create inserts a new task with a generated id.
func (s *PostgresTaskStore) Create(ctx context.Context, in task.CreateInput) (task.Task, error) {
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

	_, err := s.pool.Exec(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		t.ID, t.Title, t.Description, t.Priority, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// Replace overwrites every mutable field of an existing task.
func (s *PostgresTaskStore) Replace(ctx context.Context, id string, in task.CreateInput) (task.Task, error) {
	priority := in.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}
	row := s.pool.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, priority = $4, completed = FALSE, updated_at = $5
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id, in.Title, in.Description, priority, time.Now().UTC())
	return scanTask(row)
}

// Update applies the non-nil fields of the payload to an existing task.
func (s *PostgresTaskStore) Update(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE tasks
		 SET title       = COALESCE($2, title),
		     description = COALESCE($3, description),
		     priority    = COALESCE($4, priority),
		     completed   = COALESCE($5, completed),
		     updated_at  = $6
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id, in.Title, in.Description, in.Priority, in.Completed, time.Now().UTC())
	return scanTask(row)
}

// Delete removes a task by identifier.
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
