package models

import (
	"strings"
	"time"
)

// Status enumerates the appointment lifecycle states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduling record tying a user and patient to a physician
// and a time slot. PatientName is a denormalized copy kept for display.
type Appointment struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	PatientID          string    `json:"patient_id"`
	PatientName        string    `json:"patient_name"`
	PrimaryPhysician   string    `json:"primary_physician"`
	Schedule           time.Time `json:"schedule"`
	Status             Status    `json:"status"`
	Reason             string    `json:"reason"`
	Note               string    `json:"note,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AppointmentWithRelations is an appointment with its user and patient
// eagerly loaded.
type AppointmentWithRelations struct {
	Appointment
	User    User    `json:"user"`
	Patient Patient `json:"patient"`
}

// CreateAppointmentParams is the request body for booking an appointment.
// Status defaults to pending when unset.
type CreateAppointmentParams struct {
	UserID           string    `json:"user_id"`
	PatientID        string    `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	PrimaryPhysician string    `json:"primary_physician"`
	Schedule         time.Time `json:"schedule"`
	Status           Status    `json:"status,omitempty"`
	Reason           string    `json:"reason"`
	Note             string    `json:"note,omitempty"`
}

// Validate checks required fields and defaults the status.
func (p *CreateAppointmentParams) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(p.PatientID) == "" {
		return ErrMissingPatientID
	}
	if p.Schedule.IsZero() {
		return ErrMissingSchedule
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// AppointmentPatch carries a partial appointment update. Nil fields are left
// untouched.
type AppointmentPatch struct {
	PrimaryPhysician   *string    `json:"primary_physician,omitempty"`
	Schedule           *time.Time `json:"schedule,omitempty"`
	Status             *Status    `json:"status,omitempty"`
	Reason             *string    `json:"reason,omitempty"`
	Note               *string    `json:"note,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
}

// UpdateAppointmentParams is the full reschedule/cancel request: the patch
// plus the context needed to notify the booking user.
type UpdateAppointmentParams struct {
	AppointmentID string           `json:"appointment_id"`
	UserID        string           `json:"user_id"`
	TimeZone      string           `json:"time_zone"`
	Appointment   AppointmentPatch `json:"appointment"`
	Type          string           `json:"type"` // "schedule" or "cancel"
}
