// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"around_backend/internal/feature/auth/domain"
	usersdomain "around_backend/internal/feature/users/domain"
	"around_backend/internal/feature/users/domain/entity"
)

// bcryptCost is the hashing cost for stored passwords.
const bcryptCost = 10

// dummyHash keeps login timing the same whether or not the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the user store for account creation and credential checks.
// Following Go convention, the consumer (usecase) defines the interface.
type UserRepository interface {
	// Create persists a new user and sets its ID.
	// It returns usersdomain.ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the user with the password hash loaded.
	// It returns usersdomain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// JWTGenerator issues signed tokens; implemented by platform/jwt.
type JWTGenerator interface {
	GenerateToken(userID string) (string, error)
}

// SignupInput carries the registration fields. Empty profile fields receive defaults.
type SignupInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// authUsecase implements signup and login.
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user with a hashed password and returns the stored user.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     in.Name,
		About:    in.About,
		Avatar:   in.Avatar,
		Email:    NormalizeEmail(in.Email),
		Password: string(hashed),
	}
	user.ApplyDefaults()

	if err := u.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed token on success.
// The bcrypt comparison always runs, against a dummy hash when the user does not exist.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, usersdomain.ErrUserNotFound) {
		return "", fmt.Errorf("find user by email: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
