// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "around_backend/internal/platform/validation"

// SignupRequest is the body of POST /signup. Profile fields are optional but, when
// present, must be strings satisfying their constraints.
type SignupRequest struct {
	Name     validation.OptionalString `json:"name" binding:"omitempty,min=2,max=30"`
	About    validation.OptionalString `json:"about" binding:"omitempty,min=2,max=30"`
	Avatar   validation.OptionalString `json:"avatar" binding:"omitempty,weburl"`
	Email    string                    `json:"email" binding:"required,email"`
	Password string                    `json:"password" binding:"required,min=8"`
}
