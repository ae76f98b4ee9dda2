package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"around_backend/internal/feature/users/domain/entity"
	"around_backend/internal/feature/users/usecase"
)

// CachingUserRepository invalidates the cached card list when a profile changes,
// since every card embeds its owner's public profile.
type CachingUserRepository struct {
	usecase.UserRepository
	rdb *redis.Client
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner. A nil rdb makes it a pass-through.
func NewCachingUserRepository(rdb *redis.Client, inner usecase.UserRepository) *CachingUserRepository {
	return &CachingUserRepository{UserRepository: inner, rdb: rdb}
}

// UpdateProfile updates name and about, then invalidates the cached card list.
func (c *CachingUserRepository) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	u, err := c.UserRepository.UpdateProfile(ctx, id, name, about)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, c.rdb)
	return u, nil
}

// UpdateAvatar updates the avatar, then invalidates the cached card list.
func (c *CachingUserRepository) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	u, err := c.UserRepository.UpdateAvatar(ctx, id, avatar)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, c.rdb)
	return u, nil
}
