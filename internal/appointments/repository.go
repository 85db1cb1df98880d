package appointments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bencare/bencare/internal/models"
)

// ErrNotFound is returned when no appointment matches the lookup. An update
// that matches no row returns it too: the whole call is treated as failed.
var ErrNotFound = errors.New("appointment not found")

// Repository defines the interface for appointment storage. Reads the admin
// and patient views render come back with user and patient eagerly joined.
type Repository interface {
	Create(ctx context.Context, params *models.CreateAppointmentParams) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.AppointmentWithRelations, error)
	ListRecent(ctx context.Context) ([]models.AppointmentWithRelations, error)
	ListByUser(ctx context.Context, userID string) ([]models.AppointmentWithRelations, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.AppointmentWithRelations, error)
	Update(ctx context.Context, id string, patch *models.AppointmentPatch) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
