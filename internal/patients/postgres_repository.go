package patients

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

// PostgresRepository stores patients in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("patients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const selectPatientColumns = `p.id, p.user_id, p.name, p.email, p.phone, p.birth_date, p.gender,
	p.address, p.occupation, p.emergency_contact_name, p.emergency_contact_number,
	p.primary_physician, p.privacy_consent, p.treatment_consent, p.disclosure_consent,
	p.created_at, p.updated_at`

const selectUserColumns = `u.id, u.name, u.email, u.phone, u.created_at, u.updated_at`

// Register inserts a new patient row scoped to an existing user. Consent
// flags that were omitted arrive as false and stay false.
func (r *PostgresRepository) Register(ctx context.Context, params *models.RegisterPatientParams) (*models.Patient, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO patients (
			id, user_id, name, email, phone, birth_date, gender, address, occupation,
			emergency_contact_name, emergency_contact_number, primary_physician,
			privacy_consent, treatment_consent, disclosure_consent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`
	patient := &models.Patient{
		ID:                     id.String(),
		UserID:                 params.UserID,
		Name:                   params.Name,
		Email:                  params.Email,
		Phone:                  params.Phone,
		BirthDate:              params.BirthDate,
		Gender:                 params.Gender,
		Address:                params.Address,
		Occupation:             params.Occupation,
		EmergencyContactName:   params.EmergencyContactName,
		EmergencyContactNumber: params.EmergencyContactNumber,
		PrimaryPhysician:       params.PrimaryPhysician,
		PrivacyConsent:         params.PrivacyConsent,
		TreatmentConsent:       params.TreatmentConsent,
		DisclosureConsent:      params.DisclosureConsent,
	}
	if err := r.pool.QueryRow(ctx, query,
		id,
		params.UserID,
		params.Name,
		params.Email,
		params.Phone,
		params.BirthDate,
		params.Gender,
		params.Address,
		params.Occupation,
		params.EmergencyContactName,
		params.EmergencyContactNumber,
		params.PrimaryPhysician,
		params.PrivacyConsent,
		params.TreatmentConsent,
		params.DisclosureConsent,
	).Scan(&patient.CreatedAt, &patient.UpdatedAt); err != nil {
		return nil, fmt.Errorf("patients: insert failed: %w", err)
	}
	return patient, nil
}

// GetByUserID returns the first patient registered under the user, with the
// user record and all appointments loaded.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.PatientWithRelations, error) {
	query := `
		SELECT ` + selectPatientColumns + `, ` + selectUserColumns + `
		FROM patients p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at
		LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, userID)
	patient, err := scanPatientWithUser(row)
	if err != nil {
		return nil, err
	}

	appts, err := r.loadAppointments(ctx, []string{patient.ID})
	if err != nil {
		return nil, err
	}
	patient.Appointments = appts[patient.ID]
	if patient.Appointments == nil {
		patient.Appointments = []models.Appointment{}
	}
	return patient, nil
}

// ListAll returns every patient with relations attached, most recent first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.PatientWithRelations, error) {
	query := `
		SELECT ` + selectPatientColumns + `, ` + selectUserColumns + `
		FROM patients p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("patients: list failed: %w", err)
	}
	defer rows.Close()

	var (
		patients []models.PatientWithRelations
		ids      []string
	)
	for rows.Next() {
		patient, err := scanPatientWithUser(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *patient)
		ids = append(ids, patient.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patients: list failed: %w", err)
	}
	if len(patients) == 0 {
		return []models.PatientWithRelations{}, nil
	}

	appts, err := r.loadAppointments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		patients[i].Appointments = appts[patients[i].ID]
		if patients[i].Appointments == nil {
			patients[i].Appointments = []models.Appointment{}
		}
	}
	return patients, nil
}

// Update applies the non-nil fields and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, params *models.UpdatePatientParams) (*models.Patient, error) {
	sets, args := buildPatientUpdate(params)
	args = append(args, id)

	query := `
		UPDATE patients
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $` + strconv.Itoa(len(args)) + `
		RETURNING id, user_id, name, email, phone, birth_date, gender, address, occupation,
			emergency_contact_name, emergency_contact_number, primary_physician,
			privacy_consent, treatment_consent, disclosure_consent, created_at, updated_at
	`
	var patient models.Patient
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&patient.ID,
		&patient.UserID,
		&patient.Name,
		&patient.Email,
		&patient.Phone,
		&patient.BirthDate,
		&patient.Gender,
		&patient.Address,
		&patient.Occupation,
		&patient.EmergencyContactName,
		&patient.EmergencyContactNumber,
		&patient.PrimaryPhysician,
		&patient.PrivacyConsent,
		&patient.TreatmentConsent,
		&patient.DisclosureConsent,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patients: update failed: %w", err)
	}
	return &patient, nil
}

// Delete removes the patient row. Dependent appointments are removed by the
// schema's ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("patients: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildPatientUpdate returns SET clauses and ordered args for the non-nil
// fields, always ending with updated_at = now().
func buildPatientUpdate(params *models.UpdatePatientParams) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Email != nil {
		add("email", *params.Email)
	}
	if params.Phone != nil {
		add("phone", *params.Phone)
	}
	if params.BirthDate != nil {
		add("birth_date", *params.BirthDate)
	}
	if params.Gender != nil {
		add("gender", *params.Gender)
	}
	if params.Address != nil {
		add("address", *params.Address)
	}
	if params.Occupation != nil {
		add("occupation", *params.Occupation)
	}
	if params.EmergencyContactName != nil {
		add("emergency_contact_name", *params.EmergencyContactName)
	}
	if params.EmergencyContactNumber != nil {
		add("emergency_contact_number", *params.EmergencyContactNumber)
	}
	if params.PrimaryPhysician != nil {
		add("primary_physician", *params.PrimaryPhysician)
	}
	if params.PrivacyConsent != nil {
		add("privacy_consent", *params.PrivacyConsent)
	}
	if params.TreatmentConsent != nil {
		add("treatment_consent", *params.TreatmentConsent)
	}
	if params.DisclosureConsent != nil {
		add("disclosure_consent", *params.DisclosureConsent)
	}
	sets = append(sets, "updated_at = now()")
	return sets, args
}

func (r *PostgresRepository) loadAppointments(ctx context.Context, patientIDs []string) (map[string][]models.Appointment, error) {
	query := `
		SELECT id, user_id, patient_id, patient_name, primary_physician, schedule, status,
			reason, note, cancellation_reason, created_at, updated_at
		FROM appointments
		WHERE patient_id = ANY($1::uuid[])
		ORDER BY schedule
	`
	rows, err := r.pool.Query(ctx, query, patientIDs)
	if err != nil {
		return nil, fmt.Errorf("patients: load appointments failed: %w", err)
	}
	defer rows.Close()

	byPatient := make(map[string][]models.Appointment, len(patientIDs))
	for rows.Next() {
		var appt models.Appointment
		if err := rows.Scan(
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
			return nil, fmt.Errorf("patients: scan appointment failed: %w", err)
		}
		byPatient[appt.PatientID] = append(byPatient[appt.PatientID], appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patients: load appointments failed: %w", err)
	}
	return byPatient, nil
}

func scanPatientWithUser(row pgx.Row) (*models.PatientWithRelations, error) {
	var p models.PatientWithRelations
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.BirthDate,
		&p.Gender,
		&p.Address,
		&p.Occupation,
		&p.EmergencyContactName,
		&p.EmergencyContactNumber,
		&p.PrimaryPhysician,
		&p.PrivacyConsent,
		&p.TreatmentConsent,
		&p.DisclosureConsent,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.User.ID,
		&p.User.Name,
		&p.User.Email,
		&p.User.Phone,
		&p.User.CreatedAt,
		&p.User.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patients: select failed: %w", err)
	}
	return &p, nil
}

var _ Repository = (*PostgresRepository)(nil)
