// Package dto holds the wire types of the users endpoints.
package dto

import "around_backend/internal/feature/users/domain/entity"

// UserResponse is the public form of a user. It never carries the password hash.
type UserResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// NewUserResponse converts a domain user to its public form.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}

// NewUserListResponse converts users to their public form. The result is never nil.
func NewUserListResponse(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateProfileRequest is the body of PATCH /users/me.
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=30"`
	About string `json:"about" binding:"required,min=2,max=30"`
}

// UpdateAvatarRequest is the body of PATCH /users/me/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,weburl"`
}

// UserIDParams are the path parameters of GET /users/:id.
type UserIDParams struct {
	ID string `uri:"id" binding:"required,objectid"`
}
