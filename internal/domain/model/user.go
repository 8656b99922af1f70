// Package model defines the persisted records of the foodcart backend.
package model

import (
	"errors"
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest carries the fields needed to insert a user.
type CreateUserRequest struct {
	Email        string
	PasswordHash string
}

// Validate validates the CreateUserRequest fields.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required and cannot be empty")
	}
	if r.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
