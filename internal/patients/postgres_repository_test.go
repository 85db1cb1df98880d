package patients

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

func TestRegisterInsertsPatient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	userID := uuid.NewString()
	birth := time.Date(1990, time.March, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO patients").
		WithArgs(pgxmock.AnyArg(), userID, "Jane Doe", "jane@example.com", "+15551234567",
			birth, models.GenderFemale, "12 Main St", "Engineer",
			"John Doe", "+15557654321", "Dr. Green", true, true, false).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	patient, err := repo.Register(context.Background(), &models.RegisterPatientParams{
		UserID:                 userID,
		Name:                   "Jane Doe",
		Email:                  "jane@example.com",
		Phone:                  "+15551234567",
		BirthDate:              birth,
		Gender:                 models.GenderFemale,
		Address:                "12 Main St",
		Occupation:             "Engineer",
		EmergencyContactName:   "John Doe",
		EmergencyContactNumber: "+15557654321",
		PrimaryPhysician:       "Dr. Green",
		PrivacyConsent:         true,
		TreatmentConsent:       true,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if patient.ID == "" || patient.UserID != userID {
		t.Fatalf("unexpected patient: %+v", patient)
	}
	// Omitted consent stays false.
	if patient.DisclosureConsent {
		t.Fatalf("disclosure consent should default to false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterRejectsInvalidGender(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	_, err = repo.Register(context.Background(), &models.RegisterPatientParams{
		UserID: uuid.NewString(),
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "+15551234567",
		Gender: "unknown",
	})
	if !errors.Is(err, models.ErrInvalidGender) {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}
}

func TestGetByUserIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	userID := uuid.NewString()
	mock.ExpectQuery("SELECT (.+) FROM patients p").
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByUserID(context.Background(), userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	name := "Jane Renamed"
	mock.ExpectQuery("UPDATE patients").
		WithArgs(name, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.Update(context.Background(), uuid.NewString(), &models.UpdatePatientParams{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	id := uuid.NewString()
	mock.ExpectExec("DELETE FROM patients").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildPatientUpdateAlwaysTouchesUpdatedAt(t *testing.T) {
	sets, args := buildPatientUpdate(&models.UpdatePatientParams{})
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
	if len(sets) != 1 || sets[0] != "updated_at = now()" {
		t.Fatalf("unexpected sets: %v", sets)
	}

	name := "Jane"
	phone := "+1555"
	sets, args = buildPatientUpdate(&models.UpdatePatientParams{Name: &name, Phone: &phone})
	if len(args) != 2 || args[0] != "Jane" || args[1] != "+1555" {
		t.Fatalf("unexpected args: %v", args)
	}
	if sets[0] != "name = $1" || sets[1] != "phone = $2" || sets[2] != "updated_at = now()" {
		t.Fatalf("unexpected sets: %v", sets)
	}
}
