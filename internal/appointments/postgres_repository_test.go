package appointments

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

func TestCreateDefaultsStatusToPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	userID := uuid.NewString()
	patientID := uuid.NewString()
	schedule := time.Now().Add(48 * time.Hour)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), userID, patientID, "Jane Doe", "Dr. Green", schedule,
			models.StatusPending, "annual check-up", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	appt, err := repo.Create(context.Background(), &models.CreateAppointmentParams{
		UserID:           userID,
		PatientID:        patientID,
		PatientName:      "Jane Doe",
		PrimaryPhysician: "Dr. Green",
		Schedule:         schedule,
		Reason:           "annual check-up",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Fatalf("expected pending status, got %q", appt.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsMissingSchedule(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	_, err = repo.Create(context.Background(), &models.CreateAppointmentParams{
		UserID:    uuid.NewString(),
		PatientID: uuid.NewString(),
	})
	if !errors.Is(err, models.ErrMissingSchedule) {
		t.Fatalf("expected ErrMissingSchedule, got %v", err)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	id := uuid.NewString()
	status := models.StatusCancelled
	reason := "physician unavailable"
	now := time.Now()

	mock.ExpectQuery(`UPDATE appointments\s+SET status = \$1, cancellation_reason = \$2, updated_at = now\(\)`).
		WithArgs(status, reason, id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "patient_id", "patient_name", "primary_physician", "schedule",
			"status", "reason", "note", "cancellation_reason", "created_at", "updated_at",
		}).AddRow(id, uuid.NewString(), uuid.NewString(), "Jane Doe", "Dr. Green", now,
			status, "annual check-up", "", reason, now, now))

	appt, err := repo.Update(context.Background(), id, &models.AppointmentPatch{
		Status:             &status,
		CancellationReason: &reason,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if appt.Status != models.StatusCancelled || appt.CancellationReason != reason {
		t.Fatalf("unexpected record: %+v", appt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingAppointmentFailsWholeCall(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	status := models.StatusScheduled
	mock.ExpectQuery("UPDATE appointments").
		WithArgs(status, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.Update(context.Background(), uuid.NewString(), &models.AppointmentPatch{Status: &status}); !errors.Is(err, ErrNotFound) {
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
	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecentReturnsEmptySliceWhenNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM appointments a").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	appts, err := repo.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if appts == nil || len(appts) != 0 {
		t.Fatalf("expected empty slice, got %#v", appts)
	}
}
