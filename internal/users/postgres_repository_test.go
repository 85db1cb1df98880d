package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/bencare/bencare/internal/models"
)

func TestCreateInsertsWhenEmailUnknown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT id, name, email, phone").
		WithArgs("jane@example.com").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "Jane Doe", "jane@example.com", "+15551234567").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	user, err := repo.Create(context.Background(), &models.CreateUserParams{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+15551234567",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("unexpected email %q", user.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateReturnsExistingRecordForKnownEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	existingID := uuid.NewString()
	mock.ExpectQuery("SELECT id, name, email, phone").
		WithArgs("jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone", "created_at", "updated_at"}).
			AddRow(existingID, "Jane Original", "jane@example.com", "+15550000000", time.Now(), time.Now()))

	// Different name and phone in the request must not touch the stored row.
	user, err := repo.Create(context.Background(), &models.CreateUserParams{
		Name:  "Jane Renamed",
		Email: "jane@example.com",
		Phone: "+15559999999",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID != existingID {
		t.Fatalf("expected existing id %s, got %s", existingID, user.ID)
	}
	if user.Name != "Jane Original" || user.Phone != "+15550000000" {
		t.Fatalf("existing record was altered: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	_, err = repo.Create(context.Background(), &models.CreateUserParams{Email: "a@x.com", Phone: "+1555"})
	if !errors.Is(err, models.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	id := uuid.NewString()
	mock.ExpectQuery("SELECT id, name, email, phone").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
