package models

import "errors"

var (
	// ErrMissingName is returned when a required name is absent
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when a required email is absent
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingPhone is returned when a required phone is absent
	ErrMissingPhone = errors.New("phone is required")

	// ErrMissingUserID is returned when a record must reference a user
	ErrMissingUserID = errors.New("user id is required")

	// ErrMissingPatientID is returned when a record must reference a patient
	ErrMissingPatientID = errors.New("patient id is required")

	// ErrInvalidGender is returned when gender is not one of the enumerated values
	ErrInvalidGender = errors.New("gender must be male, female or other")

	// ErrInvalidStatus is returned when an appointment status is not enumerated
	ErrInvalidStatus = errors.New("status must be pending, scheduled or cancelled")

	// ErrMissingSchedule is returned when an appointment has no scheduled time
	ErrMissingSchedule = errors.New("schedule is required")
)
