package patients

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bencare/bencare/internal/models"
)

// UserSource resolves the user linked to a patient. The users repository
// satisfies it.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AppointmentSource lists a patient's appointments for eager loading. The
// appointments repository satisfies it.
type AppointmentSource interface {
	ListPlainByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
}

// InMemoryRepository is a map-backed Repository for tests and local runs.
// Relations are resolved through the optional sources; when absent, the
// linked user is zero-valued and appointment lists are empty.
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients map[string]*models.Patient

	users UserSource
	appts AppointmentSource
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(users UserSource, appts AppointmentSource) *InMemoryRepository {
	return &InMemoryRepository{
		patients: make(map[string]*models.Patient),
		users:    users,
		appts:    appts,
	}
}

// Register stores a new patient.
func (r *InMemoryRepository) Register(ctx context.Context, params *models.RegisterPatientParams) (*models.Patient, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patient := &models.Patient{
		ID:                     uuid.New().String(),
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
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	r.mu.Lock()
	r.patients[patient.ID] = patient
	r.mu.Unlock()

	copied := *patient
	return &copied, nil
}

// GetByUserID returns the first patient registered under the user.
func (r *InMemoryRepository) GetByUserID(ctx context.Context, userID string) (*models.PatientWithRelations, error) {
	r.mu.RLock()
	var match *models.Patient
	for _, p := range r.patients {
		if p.UserID != userID {
			continue
		}
		if match == nil || p.CreatedAt.Before(match.CreatedAt) {
			match = p
		}
	}
	r.mu.RUnlock()

	if match == nil {
		return nil, ErrNotFound
	}
	return r.withRelations(ctx, *match)
}

// GetByID returns the bare patient record; the appointments repository uses
// it to attach patient relations.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *patient
	return &copied, nil
}

// ListAll returns all patients, most recent first.
func (r *InMemoryRepository) ListAll(ctx context.Context) ([]models.PatientWithRelations, error) {
	r.mu.RLock()
	snapshot := make([]models.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		snapshot = append(snapshot, *p)
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
	})

	out := make([]models.PatientWithRelations, 0, len(snapshot))
	for _, p := range snapshot {
		withRel, err := r.withRelations(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *withRel)
	}
	return out, nil
}

// Update applies the non-nil fields and refreshes updated_at.
func (r *InMemoryRepository) Update(ctx context.Context, id string, params *models.UpdatePatientParams) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}

	if params.Name != nil {
		patient.Name = *params.Name
	}
	if params.Email != nil {
		patient.Email = *params.Email
	}
	if params.Phone != nil {
		patient.Phone = *params.Phone
	}
	if params.BirthDate != nil {
		patient.BirthDate = *params.BirthDate
	}
	if params.Gender != nil {
		patient.Gender = *params.Gender
	}
	if params.Address != nil {
		patient.Address = *params.Address
	}
	if params.Occupation != nil {
		patient.Occupation = *params.Occupation
	}
	if params.EmergencyContactName != nil {
		patient.EmergencyContactName = *params.EmergencyContactName
	}
	if params.EmergencyContactNumber != nil {
		patient.EmergencyContactNumber = *params.EmergencyContactNumber
	}
	if params.PrimaryPhysician != nil {
		patient.PrimaryPhysician = *params.PrimaryPhysician
	}
	if params.PrivacyConsent != nil {
		patient.PrivacyConsent = *params.PrivacyConsent
	}
	if params.TreatmentConsent != nil {
		patient.TreatmentConsent = *params.TreatmentConsent
	}
	if params.DisclosureConsent != nil {
		patient.DisclosureConsent = *params.DisclosureConsent
	}
	patient.UpdatedAt = time.Now().UTC()

	copied := *patient
	return &copied, nil
}

// Delete removes the patient.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *InMemoryRepository) withRelations(ctx context.Context, p models.Patient) (*models.PatientWithRelations, error) {
	out := &models.PatientWithRelations{Patient: p, Appointments: []models.Appointment{}}
	if r.users != nil {
		if user, err := r.users.GetByID(ctx, p.UserID); err == nil {
			out.User = *user
		}
	}
	if r.appts != nil {
		appts, err := r.appts.ListPlainByPatient(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out.Appointments = appts
	}
	return out, nil
}

var _ Repository = (*InMemoryRepository)(nil)
