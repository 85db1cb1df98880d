package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bencare/bencare/internal/models"
)

// UserSource resolves the user who booked an appointment. The users
// repository satisfies it.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// PatientSource resolves the patient an appointment is for. The patients
// repository satisfies it.
type PatientSource interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
}

// InMemoryRepository is a map-backed Repository for tests and local runs.
// Relations are resolved through the optional sources; when absent, the
// joined records stay zero-valued.
type InMemoryRepository struct {
	mu    sync.RWMutex
	appts map[string]*models.Appointment

	users    UserSource
	patients PatientSource
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(users UserSource, patients PatientSource) *InMemoryRepository {
	return &InMemoryRepository{
		appts:    make(map[string]*models.Appointment),
		users:    users,
		patients: patients,
	}
}

// Create books a new appointment.
func (r *InMemoryRepository) Create(ctx context.Context, params *models.CreateAppointmentParams) (*models.Appointment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:               uuid.New().String(),
		UserID:           params.UserID,
		PatientID:        params.PatientID,
		PatientName:      params.PatientName,
		PrimaryPhysician: params.PrimaryPhysician,
		Schedule:         params.Schedule,
		Status:           params.Status,
		Reason:           params.Reason,
		Note:             params.Note,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	r.mu.Lock()
	r.appts[appt.ID] = appt
	r.mu.Unlock()

	copied := *appt
	return &copied, nil
}

// GetByID retrieves an appointment with relations attached.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.AppointmentWithRelations, error) {
	r.mu.RLock()
	appt, ok := r.appts[id]
	var copied models.Appointment
	if ok {
		copied = *appt
	}
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return r.withRelations(ctx, copied), nil
}

// ListRecent returns every appointment, newest booking first.
func (r *InMemoryRepository) ListRecent(ctx context.Context) ([]models.AppointmentWithRelations, error) {
	snapshot := r.snapshot(func(a *models.Appointment) bool { return true })
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
	})
	return r.resolve(ctx, snapshot), nil
}

// ListByUser returns the appointments booked by a user, soonest first.
func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.AppointmentWithRelations, error) {
	snapshot := r.snapshot(func(a *models.Appointment) bool { return a.UserID == userID })
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Schedule.Before(snapshot[j].Schedule)
	})
	return r.resolve(ctx, snapshot), nil
}

// ListByPatient returns the appointments for a patient, soonest first.
func (r *InMemoryRepository) ListByPatient(ctx context.Context, patientID string) ([]models.AppointmentWithRelations, error) {
	snapshot := r.snapshot(func(a *models.Appointment) bool { return a.PatientID == patientID })
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Schedule.Before(snapshot[j].Schedule)
	})
	return r.resolve(ctx, snapshot), nil
}

// ListPlainByPatient returns a patient's appointments without relations; the
// patients repository uses it for eager loading.
func (r *InMemoryRepository) ListPlainByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	snapshot := r.snapshot(func(a *models.Appointment) bool { return a.PatientID == patientID })
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Schedule.Before(snapshot[j].Schedule)
	})
	return snapshot, nil
}

// Update applies the non-nil fields and refreshes updated_at.
func (r *InMemoryRepository) Update(ctx context.Context, id string, patch *models.AppointmentPatch) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.PrimaryPhysician != nil {
		appt.PrimaryPhysician = *patch.PrimaryPhysician
	}
	if patch.Schedule != nil {
		appt.Schedule = *patch.Schedule
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
	if patch.Reason != nil {
		appt.Reason = *patch.Reason
	}
	if patch.Note != nil {
		appt.Note = *patch.Note
	}
	if patch.CancellationReason != nil {
		appt.CancellationReason = *patch.CancellationReason
	}
	appt.UpdatedAt = time.Now().UTC()

	copied := *appt
	return &copied, nil
}

// Delete removes the appointment.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *InMemoryRepository) snapshot(keep func(*models.Appointment) bool) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, a := range r.appts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (r *InMemoryRepository) resolve(ctx context.Context, appts []models.Appointment) []models.AppointmentWithRelations {
	out := make([]models.AppointmentWithRelations, 0, len(appts))
	for _, a := range appts {
		out = append(out, *r.withRelations(ctx, a))
	}
	return out
}

func (r *InMemoryRepository) withRelations(ctx context.Context, a models.Appointment) *models.AppointmentWithRelations {
	out := &models.AppointmentWithRelations{Appointment: a}
	if r.users != nil {
		if user, err := r.users.GetByID(ctx, a.UserID); err == nil {
			out.User = *user
		}
	}
	if r.patients != nil {
		if patient, err := r.patients.GetByID(ctx, a.PatientID); err == nil {
			out.Patient = *patient
		}
	}
	return out
}

var _ Repository = (*InMemoryRepository)(nil)
