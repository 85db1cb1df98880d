package appointments

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bencare/bencare/internal/adminview"
	"github.com/bencare/bencare/internal/models"
	"github.com/bencare/bencare/internal/notify"
	"github.com/bencare/bencare/internal/observability/metrics"
	"github.com/bencare/bencare/pkg/logging"
)

var tracer = otel.Tracer("bencare.internal.appointments")

// scheduleFormat renders timestamps the way they appear in patient SMS,
// e.g. "June 4, 2026 at 2:30 PM".
const scheduleFormat = "January 2, 2006 at 3:04 PM"

const (
	// UpdateTypeSchedule confirms an appointment slot.
	UpdateTypeSchedule = "schedule"
	// UpdateTypeCancel calls an appointment off.
	UpdateTypeCancel = "cancel"
)

const notifyTimeout = 10 * time.Second

// RecentAppointments is the admin listing: the full appointment history plus
// its per-status counts.
type RecentAppointments struct {
	TotalCount     int                               `json:"total_count"`
	ScheduledCount int                               `json:"scheduled_count"`
	PendingCount   int                               `json:"pending_count"`
	CancelledCount int                               `json:"cancelled_count"`
	Documents      []models.AppointmentWithRelations `json:"documents"`
}

// Service coordinates appointment writes with patient notifications and
// admin-view invalidation. Notification delivery is detached from the
// request: a failed or slow send never fails the booking call.
type Service struct {
	repo        Repository
	sms         notify.SMSSender
	invalidator adminview.Invalidator
	metrics     *metrics.AppointmentMetrics
	logger      *logging.Logger
	fromName    string
}

// NewService wires the appointment service. The invalidator and metrics may
// be nil; notifications require a sender.
func NewService(repo Repository, sms notify.SMSSender, invalidator adminview.Invalidator, m *metrics.AppointmentMetrics, logger *logging.Logger, fromName string) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if sms == nil {
		sms = notify.NewStubSMSSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if fromName == "" {
		fromName = "BenCare"
	}
	return &Service{
		repo:        repo,
		sms:         sms,
		invalidator: invalidator,
		metrics:     m,
		logger:      logger,
		fromName:    fromName,
	}
}

// Create books an appointment and marks the admin view stale.
func (s *Service) Create(ctx context.Context, params *models.CreateAppointmentParams) (*models.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.create")
	defer span.End()

	appt, err := s.repo.Create(ctx, params)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("appointment.id", appt.ID),
		attribute.String("appointment.status", string(appt.Status)),
	)

	s.metrics.ObserveCreated(string(appt.Status))
	s.invalidateAdminView(ctx)
	s.logger.Info("appointment created", "appointment_id", appt.ID, "patient_id", appt.PatientID, "status", appt.Status)
	return appt, nil
}

// Get returns one appointment with relations.
func (s *Service) Get(ctx context.Context, id string) (*models.AppointmentWithRelations, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns a user's appointments with relations.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.AppointmentWithRelations, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByPatient returns a patient's appointments with relations.
func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]models.AppointmentWithRelations, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// RecentList returns every appointment, newest first, with status counts
// aggregated in a single pass over the list.
func (s *Service) RecentList(ctx context.Context) (*RecentAppointments, error) {
	ctx, span := tracer.Start(ctx, "appointments.recent_list")
	defer span.End()

	appts, err := s.repo.ListRecent(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	counts := CountByStatus(appts)
	span.SetAttributes(attribute.Int("appointments.total", len(appts)))
	return &RecentAppointments{
		TotalCount:     len(appts),
		ScheduledCount: counts.Scheduled,
		PendingCount:   counts.Pending,
		CancelledCount: counts.Cancelled,
		Documents:      appts,
	}, nil
}

// Update applies the patch, notifies the booking user by SMS, and marks the
// admin view stale. A missing appointment fails the whole call with
// ErrNotFound; a failed SMS does not.
func (s *Service) Update(ctx context.Context, params *models.UpdateAppointmentParams) (*models.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.update")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", params.AppointmentID),
		attribute.String("update.type", params.Type),
	)

	appt, err := s.repo.Update(ctx, params.AppointmentID, &params.Appointment)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveUpdated(params.Type)
	s.dispatchNotification(ctx, params.UserID, buildSMSMessage(s.fromName, params.Type, appt, params.TimeZone))
	s.invalidateAdminView(ctx)
	s.logger.Info("appointment updated", "appointment_id", appt.ID, "type", params.Type, "status", appt.Status)
	return appt, nil
}

// Delete removes the appointment and marks the admin view stale.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "appointments.delete")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}

	s.metrics.ObserveDeleted()
	s.invalidateAdminView(ctx)
	s.logger.Info("appointment deleted", "appointment_id", id)
	return nil
}

// dispatchNotification hands the message to the sender on a detached
// context so delivery outlives the request and its cancellation.
func (s *Service) dispatchNotification(ctx context.Context, userID, content string) {
	detached := context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()

		res, err := s.sms.SendSMS(sendCtx, userID, content)
		if err != nil || !res.Success {
			s.metrics.ObserveNotification("failed")
			s.logger.Error("SMS notification failed", "user_id", userID, "error", err)
			return
		}
		s.metrics.ObserveNotification("sent")
		s.logger.Info("SMS notification dispatched", "user_id", userID, "message_id", res.MessageID)
	}()
}

func (s *Service) invalidateAdminView(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		s.logger.Error("admin view invalidation failed", "error", err)
	}
}

// buildSMSMessage renders the confirmation or cancellation text with the
// schedule shown in the recipient's timezone.
func buildSMSMessage(fromName, updateType string, appt *models.Appointment, timeZone string) string {
	when := formatSchedule(appt.Schedule, timeZone)
	if updateType == UpdateTypeSchedule {
		return fmt.Sprintf("Greetings from %s. Your appointment is confirmed for %s with Dr. %s.", fromName, when, appt.PrimaryPhysician)
	}
	return fmt.Sprintf("Greetings from %s. We regret to inform that your appointment for %s is cancelled. Reason: %s.", fromName, when, appt.CancellationReason)
}

// formatSchedule renders t in the named IANA zone, falling back to UTC when
// the zone is empty or unknown.
func formatSchedule(t time.Time, timeZone string) string {
	loc := time.UTC
	if timeZone != "" {
		if parsed, err := time.LoadLocation(timeZone); err == nil {
			loc = parsed
		}
	}
	return t.In(loc).Format(scheduleFormat)
}
