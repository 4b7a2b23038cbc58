package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taskpulse/backend/internal/model/user"
	"github.com/taskpulse/backend/internal/store"
)

func setupRouter() (*chi.Mux, *store.MemoryUserStore) {
	users := store.NewMemoryUserStore()
	handler := New(users)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, users
}

func TestCreateUser(t *testing.T) {
	r, _ := setupRouter()

	body, _ := json.Marshal(map[string]string{"name": "Ada", "email": "ada@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	r, _ := setupRouter()

	body, _ := json.Marshal(map[string]string{"name": "Ada", "email": "not-an-email"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var env struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Errors) != 1 {
		t.Fatalf("expected one field error, got %v", env.Errors)
	}
}

func TestPatchUserPreservesOtherFields(t *testing.T) {
	r, users := setupRouter()
	created, _ := users.Create(context.Background(), user.CreateInput{
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  "admin",
	})

	body, _ := json.Marshal(map[string]string{"name": "Grace"})
	req := httptest.NewRequest(http.MethodPatch, "/users/"+created.ID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	got, _ := users.Get(context.Background(), created.ID)
	if got.Name != "Grace" || got.Role != "admin" {
		t.Fatalf("expected partial update, got %+v", got)
	}
}

func TestGetUserNotFound(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
