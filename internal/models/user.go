package models

import (
	"strings"
	"time"
)

// User is the identity record created when someone first books through the site.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserParams is the request body for creating a user.
type CreateUserParams struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks required fields.
func (p *CreateUserParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(p.Phone) == "" {
		return ErrMissingPhone
	}
	return nil
}
