// Package usecase implements the business logic for the users feature.
package usecase

import (
	"context"
	"fmt"

	"around_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts the user store for profile reads and updates.
// Implementations return domain.ErrUserNotFound for absent records and
// domain.ErrInvalidUserID for malformed ids.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error)
}

// usersUsecase implements profile operations.
type usersUsecase struct {
	users UserRepository
}

// NewUsersUsecase creates a new usersUsecase.
func NewUsersUsecase(users UserRepository) *usersUsecase {
	return &usersUsecase{users: users}
}

// List returns every user. An empty store yields an empty slice.
func (u *usersUsecase) List(ctx context.Context) ([]entity.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// Get returns the user with the given id.
func (u *usersUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// UpdateProfile replaces the name and about of the user id.
func (u *usersUsecase) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	user, err := u.users.UpdateProfile(ctx, id, name, about)
	if err != nil {
		return nil, fmt.Errorf("update profile of %s: %w", id, err)
	}
	return user, nil
}

// UpdateAvatar replaces the avatar of the user id.
func (u *usersUsecase) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	user, err := u.users.UpdateAvatar(ctx, id, avatar)
	if err != nil {
		return nil, fmt.Errorf("update avatar of %s: %w", id, err)
	}
	return user, nil
}
