package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"around_backend/internal/feature/auth/domain"
	usersdomain "around_backend/internal/feature/users/domain"
	"around_backend/internal/feature/users/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "65f1c0a2b3d4e5f607182930"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, usersdomain.ErrUserNotFound
}

// mockJWTGenerator is a mock implementation of JWTGenerator.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "mock-jwt-token", nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("hashes the password and applies defaults", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{CreateFunc: func(ctx context.Context, user *entity.User) error {
			created = user
			user.ID = "65f1c0a2b3d4e5f607182930"
			return nil
		}}

		user, err := NewAuthUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), SignupInput{
			Email:    "  Ann@Example.COM ",
			Password: "password123",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEqual(t, "password123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
		cost, err := bcrypt.Cost([]byte(created.Password))
		require.NoError(t, err)
		assert.Equal(t, 10, cost)

		assert.Equal(t, "ann@example.com", user.Email)
		assert.Equal(t, entity.DefaultName, user.Name)
		assert.Equal(t, entity.DefaultAbout, user.About)
		assert.Equal(t, entity.DefaultAvatar, user.Avatar)
		assert.Equal(t, "65f1c0a2b3d4e5f607182930", user.ID)
	})

	t.Run("keeps provided profile fields", func(t *testing.T) {
		user, err := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{}).Signup(context.Background(), SignupInput{
			Name:     "Marie",
			About:    "Chemist",
			Avatar:   "https://example.com/m.png",
			Email:    "marie@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Marie", user.Name)
		assert.Equal(t, "Chemist", user.About)
		assert.Equal(t, "https://example.com/m.png", user.Avatar)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepository{CreateFunc: func(ctx context.Context, user *entity.User) error {
			return usersdomain.ErrEmailAlreadyExists
		}}

		_, err := NewAuthUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), SignupInput{
			Email: "dup@example.com", Password: "password123",
		})
		assert.ErrorIs(t, err, usersdomain.ErrEmailAlreadyExists)
	})

	t.Run("password over bcrypt limit", func(t *testing.T) {
		called := false
		repo := &mockUserRepository{CreateFunc: func(ctx context.Context, user *entity.User) error {
			called = true
			return nil
		}}

		_, err := NewAuthUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), SignupInput{
			Email: "long@example.com", Password: strings.Repeat("x", 73),
		})
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
		assert.False(t, called)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	stored := &entity.User{ID: "65f1c0a2b3d4e5f607182930", Email: "ann@example.com", Password: hashed(t, "password123")}

	tests := []struct {
		name      string
		email     string
		password  string
		findFn    func(ctx context.Context, email string) (*entity.User, error)
		jwtFn     func(userID string) (string, error)
		wantToken string
		wantErr   error
	}{
		{
			name:     "success",
			email:    "ann@example.com",
			password: "password123",
			findFn: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
			jwtFn: func(userID string) (string, error) {
				if userID != stored.ID {
					return "", errors.New("unexpected subject")
				}
				return "signed-token", nil
			},
			wantToken: "signed-token",
		},
		{
			name:     "email is normalized before lookup",
			email:    " ANN@example.com",
			password: "password123",
			findFn: func(ctx context.Context, email string) (*entity.User, error) {
				if email != "ann@example.com" {
					return nil, usersdomain.ErrUserNotFound
				}
				return stored, nil
			},
			wantToken: "mock-jwt-token",
		},
		{
			name:     "wrong password",
			email:    "ann@example.com",
			password: "wrong-password",
			findFn: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			findFn:   nil,
			wantErr:  domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: tt.findFn}, &mockJWTGenerator{GenerateTokenFunc: tt.jwtFn})

			token, err := uc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				// Same sentinel for both failure causes.
				assert.Same(t, domain.ErrInvalidCredentials, err)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthUsecase_Login_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &mockUserRepository{FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
		return nil, storeErr
	}}

	_, err := NewAuthUsecase(repo, &mockJWTGenerator{}).Login(context.Background(), "a@b.co", "password123")
	assert.ErrorIs(t, err, storeErr)
}

func TestAuthUsecase_Login_TokenFailure(t *testing.T) {
	stored := &entity.User{ID: "65f1c0a2b3d4e5f607182930", Password: hashed(t, "password123")}
	repo := &mockUserRepository{FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
		return stored, nil
	}}
	jwt := &mockJWTGenerator{GenerateTokenFunc: func(userID string) (string, error) {
		return "", errors.New("sign failed")
	}}

	_, err := NewAuthUsecase(repo, jwt).Login(context.Background(), "a@b.co", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
