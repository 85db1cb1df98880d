package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bencare/bencare/internal/models"
)

// PostgresRepository stores users in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("users: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const selectUserColumns = `id, name, email, phone, created_at, updated_at`

// Create inserts a new user unless one with the same email already exists,
// in which case the existing row is returned as-is. Name and phone from the
// request do not overwrite the stored record.
func (r *PostgresRepository) Create(ctx context.Context, params *models.CreateUserParams) (*models.User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.getByEmail(ctx, params.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO users (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	user := &models.User{
		ID:    id.String(),
		Name:  params.Name,
		Email: params.Email,
		Phone: params.Phone,
	}
	if err := r.pool.QueryRow(ctx, query, id, params.Name, params.Email, params.Phone).
		Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("users: insert failed: %w", err)
	}
	return user, nil
}

// GetByID fetches a user by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT ` + selectUserColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) getByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + selectUserColumns + `
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("users: select failed: %w", err)
	}
	return &user, nil
}

var _ Repository = (*PostgresRepository)(nil)
