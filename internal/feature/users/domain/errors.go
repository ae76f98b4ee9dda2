// Package domain defines domain-level errors for the users feature.
package domain

import "around_backend/internal/shared/apperror"

// Domain errors returned by user repositories and usecases.
// They are typed failures, so the error responder maps them without translation.
var (
	// ErrUserNotFound indicates that no user matches the given id or email.
	ErrUserNotFound = apperror.NotFound("User not found")

	// ErrEmailAlreadyExists is returned when signup hits the unique email constraint.
	ErrEmailAlreadyExists = apperror.Conflict("Email is already registered")

	// ErrInvalidUserID is returned when an id is not a 24 character hex string.
	ErrInvalidUserID = apperror.BadRequest("Invalid user id")
)
