package data

import apperrors "github.com/target/foodcart/internal/errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = apperrors.NotFound("user not found")
	// ErrUserRequestRequired is returned when Create is called with a nil request.
	ErrUserRequestRequired = apperrors.Validation("create user request is required")
)
