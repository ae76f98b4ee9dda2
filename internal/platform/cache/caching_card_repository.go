// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"around_backend/internal/feature/cards/domain/entity"
	"around_backend/internal/feature/cards/usecase"
)

const (
	// DefaultTTL bounds how stale a cached card list may get.
	DefaultTTL = 30 * time.Second
	// CardsListKey prefixes the JSON-encoded card list of each generation.
	CardsListKey = "cards:list"
	// CardsGenKey holds the current list generation. Writes increment it.
	CardsGenKey = "cards:gen"
)

// listKey returns the key of the cached list for generation gen.
func listKey(gen string) string {
	return CardsListKey + ":" + gen
}

// CachingCardRepository decorates a CardRepository with a Redis-cached List.
// Every write that can change the list bumps the generation, so a list computed
// before the write is stored under a key no reader asks for again.
type CachingCardRepository struct {
	inner usecase.CardRepository
	rdb   *redis.Client
	ttl   time.Duration
}

var _ usecase.CardRepository = (*CachingCardRepository)(nil)

// NewCachingCardRepository decorates inner. A nil rdb disables caching; a ttl of 0 uses DefaultTTL.
func NewCachingCardRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CardRepository) *CachingCardRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachingCardRepository{inner: inner, rdb: rdb, ttl: ttl}
}

// List returns the cached list of the current generation, falling back to the store on a miss.
func (c *CachingCardRepository) List(ctx context.Context) ([]entity.Card, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	gen, err := c.rdb.Get(ctx, CardsGenKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		gen = "0"
	case err != nil:
		slog.Warn("card list cache unavailable", "error", err)
		return c.inner.List(ctx)
	}
	key := listKey(gen)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Card
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID always reads through to the store.
func (c *CachingCardRepository) FindByID(ctx context.Context, id string) (*entity.Card, error) {
	return c.inner.FindByID(ctx, id)
}

// Create stores the card and invalidates the cached list.
func (c *CachingCardRepository) Create(ctx context.Context, card *entity.Card) error {
	if err := c.inner.Create(ctx, card); err != nil {
		return err
	}
	invalidate(ctx, c.rdb)
	return nil
}

// Delete removes the card and invalidates the cached list.
func (c *CachingCardRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, c.rdb)
	return nil
}

// AddLike adds the like and invalidates the cached list.
func (c *CachingCardRepository) AddLike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	card, err := c.inner.AddLike(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, c.rdb)
	return card, nil
}

// RemoveLike removes the like and invalidates the cached list.
func (c *CachingCardRepository) RemoveLike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	card, err := c.inner.RemoveLike(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, c.rdb)
	return card, nil
}

// invalidate moves readers to a new list generation. Lists cached under older
// generations expire with their TTL. Failures only log; the TTL bounds staleness.
func invalidate(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Incr(ctx, CardsGenKey).Err(); err != nil {
		slog.Warn("card list cache invalidation failed", "error", err)
	}
}
