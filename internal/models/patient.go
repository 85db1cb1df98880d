package models

import (
	"strings"
	"time"
)

// Gender enumerates the accepted patient gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the enumerated values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient is the demographic and intake record collected at registration.
type Patient struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone"`
	BirthDate              time.Time `json:"birth_date"`
	Gender                 Gender    `json:"gender"`
	Address                string    `json:"address"`
	Occupation             string    `json:"occupation"`
	EmergencyContactName   string    `json:"emergency_contact_name"`
	EmergencyContactNumber string    `json:"emergency_contact_number"`
	PrimaryPhysician       string    `json:"primary_physician"`
	PrivacyConsent         bool      `json:"privacy_consent"`
	TreatmentConsent       bool      `json:"treatment_consent"`
	DisclosureConsent      bool      `json:"disclosure_consent"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// PatientWithRelations is a patient with its user and appointments eagerly loaded.
type PatientWithRelations struct {
	Patient
	User         User          `json:"user"`
	Appointments []Appointment `json:"appointments"`
}

// RegisterPatientParams is the request body for patient registration.
// Consent flags default to false when omitted.
type RegisterPatientParams struct {
	UserID                 string    `json:"user_id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone"`
	BirthDate              time.Time `json:"birth_date"`
	Gender                 Gender    `json:"gender"`
	Address                string    `json:"address"`
	Occupation             string    `json:"occupation"`
	EmergencyContactName   string    `json:"emergency_contact_name"`
	EmergencyContactNumber string    `json:"emergency_contact_number"`
	PrimaryPhysician       string    `json:"primary_physician"`
	PrivacyConsent         bool      `json:"privacy_consent"`
	TreatmentConsent       bool      `json:"treatment_consent"`
	DisclosureConsent      bool      `json:"disclosure_consent"`
}

// Validate checks required fields. Field presence is the caller's contract;
// the data layer only refuses records it cannot store coherently.
func (p *RegisterPatientParams) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(p.Phone) == "" {
		return ErrMissingPhone
	}
	if !p.Gender.Valid() {
		return ErrInvalidGender
	}
	return nil
}

// UpdatePatientParams carries a partial patient update. Nil fields are left
// untouched.
type UpdatePatientParams struct {
	Name                   *string    `json:"name,omitempty"`
	Email                  *string    `json:"email,omitempty"`
	Phone                  *string    `json:"phone,omitempty"`
	BirthDate              *time.Time `json:"birth_date,omitempty"`
	Gender                 *Gender    `json:"gender,omitempty"`
	Address                *string    `json:"address,omitempty"`
	Occupation             *string    `json:"occupation,omitempty"`
	EmergencyContactName   *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber *string    `json:"emergency_contact_number,omitempty"`
	PrimaryPhysician       *string    `json:"primary_physician,omitempty"`
	PrivacyConsent         *bool      `json:"privacy_consent,omitempty"`
	TreatmentConsent       *bool      `json:"treatment_consent,omitempty"`
	DisclosureConsent      *bool      `json:"disclosure_consent,omitempty"`
}
