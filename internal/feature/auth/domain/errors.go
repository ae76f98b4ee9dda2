// Package domain defines domain-level errors for the auth feature.
package domain

import "around_backend/internal/shared/apperror"

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong password,
	// so the two cases are indistinguishable to clients.
	ErrInvalidCredentials = apperror.Unauthorized("Incorrect email or password")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72 byte limit.
	ErrPasswordTooLong = apperror.BadRequest(`"password" length must be less than or equal to 72 bytes`)
)
