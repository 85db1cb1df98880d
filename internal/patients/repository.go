package patients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bencare/bencare/internal/models"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

// Repository defines the interface for patient storage. Lookups that the
// admin UI renders load the linked user and appointments eagerly.
type Repository interface {
	Register(ctx context.Context, params *models.RegisterPatientParams) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID string) (*models.PatientWithRelations, error)
	ListAll(ctx context.Context) ([]models.PatientWithRelations, error)
	Update(ctx context.Context, id string, params *models.UpdatePatientParams) (*models.Patient, error)
	Delete(ctx context.Context, id string) error
}

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
