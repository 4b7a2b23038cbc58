package task

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taskpulse/backend/internal/model/task"
	"github.com/taskpulse/backend/internal/realtime"
	"github.com/taskpulse/backend/internal/store"
	"github.com/taskpulse/backend/pkg/utils"
)

func setupRouter() (*chi.Mux, *store.MemoryTaskStore) {
	tasks := store.NewMemoryTaskStore()
	hub := realtime.NewHub(realtime.NewRegistry())
	handler := New(tasks, hub)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, tasks
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) utils.Envelope {
	t.Helper()

	var env utils.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestCreateTask(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(t, r, http.MethodPost, "/tasks", map[string]string{"title": "write tests"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	env := decodeEnvelope(t, resp)
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}
}

func TestCreateTaskValidationErrors(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(t, r, http.MethodPost, "/tasks", map[string]string{"priority": "urgent"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	env := decodeEnvelope(t, resp)
	if env.Success {
		t.Fatalf("expected failure envelope")
	}
	if len(env.Errors) != 2 {
		t.Fatalf("expected two field errors, got %v", env.Errors)
	}
}

func TestCreateTaskInvalidBody(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader([]byte("{")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(t, r, http.MethodGet, "/tasks/no-such-id", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListTasksWithFilter(t *testing.T) {
	r, tasks := setupRouter()
	ctx := context.Background()

	tasks.Create(ctx, task.CreateInput{Title: "a", Priority: task.PriorityLow})
	tasks.Create(ctx, task.CreateInput{Title: "b", Priority: task.PriorityHigh})

	resp := doJSON(t, r, http.MethodGet, "/tasks?priority=high", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var env struct {
		Success bool        `json:"success"`
		Data    []task.Task `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].Title != "b" {
		t.Fatalf("expected only the high task, got %+v", env.Data)
	}
}

func TestListTasksRejectsBadFilter(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(t, r, http.MethodGet, "/tasks?completed=maybe", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPatchTaskPartialUpdate(t *testing.T) {
	r, tasks := setupRouter()
	created, _ := tasks.Create(context.Background(), task.CreateInput{
		Title:       "before",
		Description: "keep",
	})

	resp := doJSON(t, r, http.MethodPatch, "/tasks/"+created.ID, map[string]any{"completed": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	got, _ := tasks.Get(context.Background(), created.ID)
	if !got.Completed || got.Description != "keep" {
		t.Fatalf("expected partial update, got %+v", got)
	}
}

func TestPutTaskReplaces(t *testing.T) {
	r, tasks := setupRouter()
	created, _ := tasks.Create(context.Background(), task.CreateInput{
		Title:       "before",
		Description: "old",
		Priority:    task.PriorityHigh,
	})

	resp := doJSON(t, r, http.MethodPut, "/tasks/"+created.ID, map[string]string{"title": "after"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	got, _ := tasks.Get(context.Background(), created.ID)
	if got.Title != "after" || got.Description != "" || got.Priority != task.PriorityMedium {
		t.Fatalf("expected full replace, got %+v", got)
	}
}

func TestDeleteTask(t *testing.T) {
	r, tasks := setupRouter()
	created, _ := tasks.Create(context.Background(), task.CreateInput{Title: "x"})

	resp := doJSON(t, r, http.MethodDelete, "/tasks/"+created.ID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodDelete, "/tasks/"+created.ID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}
