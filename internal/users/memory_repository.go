package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bencare/bencare/internal/models"
)

// InMemoryRepository is a map-backed Repository for tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[string]*models.User),
	}
}

// Create stores a new user, or returns the existing one for the same email.
func (r *InMemoryRepository) Create(ctx context.Context, params *models.CreateUserParams) (*models.User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == params.Email {
			existing := *u
			return &existing, nil
		}
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[user.ID] = user

	copied := *user
	return &copied, nil
}

// GetByID retrieves a user by ID.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

var _ Repository = (*InMemoryRepository)(nil)
