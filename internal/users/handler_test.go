package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bencare/bencare/internal/models"
	"github.com/bencare/bencare/pkg/logging"
)

func newUsersRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/users", h.Create)
	r.Get("/users/{userID}", h.Get)
	return r
}

func TestCreateUserEndpoint(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), logging.Default())
	router := newUsersRouter(h)

	body, _ := json.Marshal(models.CreateUserParams{Name: "Jane", Email: "jane@x.com", Phone: "+1555"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@x.com", user.Email)
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), logging.Default())
	router := newUsersRouter(h)

	body, _ := json.Marshal(models.CreateUserParams{Email: "jane@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	repo := NewInMemoryRepository()
	created, err := repo.Create(context.Background(), &models.CreateUserParams{Name: "Jane", Email: "jane@x.com", Phone: "+1555"})
	require.NoError(t, err)

	h := NewHandler(repo, logging.Default())
	router := newUsersRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/users/"+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/users/does-not-exist", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
