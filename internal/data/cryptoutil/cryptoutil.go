// Package cryptoutil hashes and checks account passwords.
package cryptoutil

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/target/foodcart/internal/ports"
)

// ErrMismatchedPassword is returned by Compare when the password does not match the hash.
var ErrMismatchedPassword = errors.New("password does not match")

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher implements ports.PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a hasher. Cost must be within bcrypt's supported range.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Compare checks password against hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}

// NoopHasher stores passwords with a prefix marker. It is useful for tests.
type NoopHasher struct{}

const noopPrefix = "noop:"

func (NoopHasher) Hash(password string) (string, error) {
	return noopPrefix + password, nil
}

func (NoopHasher) Compare(hash, password string) error {
	if hash != noopPrefix+password {
		return ErrMismatchedPassword
	}
	return nil
}
