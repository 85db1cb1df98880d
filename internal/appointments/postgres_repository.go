package appointments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bencare/bencare/internal/models"
)

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const selectAppointmentColumns = `a.id, a.user_id, a.patient_id, a.patient_name, a.primary_physician,
	a.schedule, a.status, a.reason, a.note, a.cancellation_reason, a.created_at, a.updated_at`

const selectUserColumns = `u.id, u.name, u.email, u.phone, u.created_at, u.updated_at`

const selectPatientColumns = `p.id, p.user_id, p.name, p.email, p.phone, p.birth_date, p.gender,
	p.address, p.occupation, p.emergency_contact_name, p.emergency_contact_number,
	p.primary_physician, p.privacy_consent, p.treatment_consent, p.disclosure_consent,
	p.created_at, p.updated_at`

// Create books a new appointment. The status was defaulted to pending by
// validation when the caller left it unset.
func (r *PostgresRepository) Create(ctx context.Context, params *models.CreateAppointmentParams) (*models.Appointment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO appointments (
			id, user_id, patient_id, patient_name, primary_physician, schedule, status, reason, note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	appt := &models.Appointment{
		ID:               id.String(),
		UserID:           params.UserID,
		PatientID:        params.PatientID,
		PatientName:      params.PatientName,
		PrimaryPhysician: params.PrimaryPhysician,
		Schedule:         params.Schedule,
		Status:           params.Status,
		Reason:           params.Reason,
		Note:             params.Note,
	}
	if err := r.pool.QueryRow(ctx, query,
		id,
		params.UserID,
		params.PatientID,
		params.PatientName,
		params.PrimaryPhysician,
		params.Schedule,
		params.Status,
		params.Reason,
		params.Note,
	).Scan(&appt.CreatedAt, &appt.UpdatedAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}
	return appt, nil
}

// GetByID returns a single appointment with its user and patient joined.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.AppointmentWithRelations, error) {
	query := `
		SELECT ` + selectAppointmentColumns + `, ` + selectUserColumns + `, ` + selectPatientColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanAppointmentWithRelations(row)
}

// ListRecent returns every appointment, newest booking first. The admin view
// renders this list together with its status counts.
func (r *PostgresRepository) ListRecent(ctx context.Context) ([]models.AppointmentWithRelations, error) {
	query := `
		SELECT ` + selectAppointmentColumns + `, ` + selectUserColumns + `, ` + selectPatientColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN patients p ON p.id = a.patient_id
		ORDER BY a.created_at DESC
	`
	return r.list(ctx, query)
}

// ListByUser returns the appointments booked by a user, soonest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.AppointmentWithRelations, error) {
	query := `
		SELECT ` + selectAppointmentColumns + `, ` + selectUserColumns + `, ` + selectPatientColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.user_id = $1
		ORDER BY a.schedule
	`
	return r.list(ctx, query, userID)
}

// ListByPatient returns the appointments for a patient, soonest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]models.AppointmentWithRelations, error) {
	query := `
		SELECT ` + selectAppointmentColumns + `, ` + selectUserColumns + `, ` + selectPatientColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.patient_id = $1
		ORDER BY a.schedule
	`
	return r.list(ctx, query, patientID)
}

// Update applies the non-nil fields and refreshes updated_at. An id that
// matches no row fails the whole call with ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.AppointmentPatch) (*models.Appointment, error) {
	sets, args := buildAppointmentUpdate(patch)
	args = append(args, id)

	query := `
		UPDATE appointments
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $` + strconv.Itoa(len(args)) + `
		RETURNING id, user_id, patient_id, patient_name, primary_physician, schedule, status,
			reason, note, cancellation_reason, created_at, updated_at
	`
	var appt models.Appointment
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&appt.ID,
		&appt.UserID,
		&appt.PatientID,
		&appt.PatientName,
		&appt.PrimaryPhysician,
		&appt.Schedule,
		&appt.Status,
		&appt.Reason,
		&appt.Note,
		&appt.CancellationReason,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: update failed: %w", err)
	}
	return &appt, nil
}

// Delete removes the appointment row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.AppointmentWithRelations, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	appts := []models.AppointmentWithRelations{}
	for rows.Next() {
		appt, err := scanAppointmentWithRelations(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	return appts, nil
}

// buildAppointmentUpdate returns SET clauses and ordered args for the non-nil
// fields, always ending with updated_at = now().
func buildAppointmentUpdate(patch *models.AppointmentPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if patch.PrimaryPhysician != nil {
		add("primary_physician", *patch.PrimaryPhysician)
	}
	if patch.Schedule != nil {
		add("schedule", *patch.Schedule)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Reason != nil {
		add("reason", *patch.Reason)
	}
	if patch.Note != nil {
		add("note", *patch.Note)
	}
	if patch.CancellationReason != nil {
		add("cancellation_reason", *patch.CancellationReason)
	}
	sets = append(sets, "updated_at = now()")
	return sets, args
}

func scanAppointmentWithRelations(row pgx.Row) (*models.AppointmentWithRelations, error) {
	var a models.AppointmentWithRelations
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PatientID,
		&a.PatientName,
		&a.PrimaryPhysician,
		&a.Schedule,
		&a.Status,
		&a.Reason,
		&a.Note,
		&a.CancellationReason,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.User.ID,
		&a.User.Name,
		&a.User.Email,
		&a.User.Phone,
		&a.User.CreatedAt,
		&a.User.UpdatedAt,
		&a.Patient.ID,
		&a.Patient.UserID,
		&a.Patient.Name,
		&a.Patient.Email,
		&a.Patient.Phone,
		&a.Patient.BirthDate,
		&a.Patient.Gender,
		&a.Patient.Address,
		&a.Patient.Occupation,
		&a.Patient.EmergencyContactName,
		&a.Patient.EmergencyContactNumber,
		&a.Patient.PrimaryPhysician,
		&a.Patient.PrivacyConsent,
		&a.Patient.TreatmentConsent,
		&a.Patient.DisclosureConsent,
		&a.Patient.CreatedAt,
		&a.Patient.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return &a, nil
}

var _ Repository = (*PostgresRepository)(nil)
