package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"around_backend/internal/feature/users/domain/entity"
)

// mockUserRepository is a function-field mock of the users UserRepository.
type mockUserRepository struct {
	updateProfileFn func(ctx context.Context, id, name, about string) (*entity.User, error)
}

func (m *mockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	return []entity.User{}, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return &entity.User{ID: id}, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, name, about)
	}
	return &entity.User{ID: id, Name: name, About: about}, nil
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	return &entity.User{ID: id, Avatar: avatar}, nil
}

func TestCachingUserRepository_ProfileUpdatesInvalidateCards(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectIncr(CardsGenKey).SetVal(1)
	mock.ExpectIncr(CardsGenKey).SetVal(2)

	repo := NewCachingUserRepository(rdb, &mockUserRepository{})

	u, err := repo.UpdateProfile(context.Background(), "id", "Ann", "Pilot")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	u, err = repo.UpdateAvatar(context.Background(), "id", "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", u.Avatar)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_ReadsPassThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	repo := NewCachingUserRepository(rdb, &mockUserRepository{})
	u, err := repo.FindByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", u.ID)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_FailedUpdate(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("write failed")
	repo := NewCachingUserRepository(nil, &mockUserRepository{
		updateProfileFn: func(ctx context.Context, id, name, about string) (*entity.User, error) {
			return nil, storeErr
		},
	})

	_, err := repo.UpdateProfile(context.Background(), "id", "Ann", "Pilot")
	assert.ErrorIs(t, err, storeErr)
}
