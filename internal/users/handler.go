package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bencare/bencare/internal/models"
	"github.com/bencare/bencare/pkg/logging"
)

// Handler handles HTTP requests for users
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new users handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Create handles POST /users requests. Creation is idempotent by email, so
// re-submitting a booking form returns the original user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params models.CreateUserParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.logger.Error("users: failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.repo.Create(r.Context(), &params)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingName),
			errors.Is(err, models.ErrMissingEmail),
			errors.Is(err, models.ErrMissingPhone):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("users: failed to create user", "error", err)
			http.Error(w, "failed to create user", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("user created", "id", user.ID, "email", user.Email)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}

// Get handles GET /users/{userID} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")
	if id == "" {
		http.Error(w, "missing user id", http.StatusBadRequest)
		return
	}

	user, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.Error("users: failed to load user", "error", err, "id", id)
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
