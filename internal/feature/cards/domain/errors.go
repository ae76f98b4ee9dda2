// Package domain defines domain-level errors for the cards feature.
package domain

import "around_backend/internal/shared/apperror"

var (
	ErrCardNotFound  = apperror.NotFound("Card not found")
	ErrCardNotOwned  = apperror.Forbidden("Not allowed to delete this card")
	ErrInvalidCardID = apperror.BadRequest("Invalid card id")
)
