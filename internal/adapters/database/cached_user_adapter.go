package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/providers"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/observability"
)

var cacheCodec = jsoniter.ConfigFastest

const userKeySpace = "user"

// CachedUserAdapter wraps a UserRepository with a read-through cache.
// Every booking, item and comment operation resolves its acting user first,
// so single-user reads dominate.
type CachedUserAdapter struct {
	adapter repositories.UserRepository
	cache   providers.CacheProvider
	ttl     int
	metrics *observability.Metrics
}

// NewCachedUserAdapter creates a new cached user adapter
func NewCachedUserAdapter(adapter repositories.UserRepository, cache providers.CacheProvider, ttl time.Duration, metrics *observability.Metrics) repositories.UserRepository {
	return &CachedUserAdapter{
		adapter: adapter,
		cache:   cache,
		ttl:     int(ttl.Seconds()),
		metrics: metrics,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("%s:%d", userKeySpace, id)
}

// GetByID retrieves a user by ID with caching. Reads inside a transaction
// go straight to the store and leave the cache untouched.
func (a *CachedUserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	if inTransaction(ctx) {
		return a.adapter.GetByID(ctx, id)
	}

	key := userCacheKey(id)
	logger := observability.LoggerFromContext(ctx)

	cached, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		var user entities.User
		if err := cacheCodec.Unmarshal(cached, &user); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, userKeySpace)
			return &user, nil
		}
		logger.Warn().Err(err).Int64("user_id", id).Msg("Failed to unmarshal cached user")
	case !errors.Is(err, providers.ErrCacheMiss):
		logger.Warn().Err(err).Int64("user_id", id).Msg("User cache unavailable")
	}
	observability.RecordCacheMiss(ctx, a.metrics, userKeySpace)

	user, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := cacheCodec.Marshal(user); err == nil {
		if err := a.cache.Set(ctx, key, data, a.ttl); err != nil {
			logger.Warn().Err(err).Int64("user_id", id).Msg("Failed to cache user")
		}
	}
	return user, nil
}

// Create creates a user; nothing is cached until the first read
func (a *CachedUserAdapter) Create(ctx context.Context, user *entities.User) error {
	return a.adapter.Create(ctx, user)
}

// Update updates a user and invalidates its cache entry once the write commits
func (a *CachedUserAdapter) Update(ctx context.Context, user *entities.User) error {
	if err := a.adapter.Update(ctx, user); err != nil {
		return err
	}
	id := user.ID
	afterCommit(ctx, func() { a.invalidate(ctx, id) })
	return nil
}

// List retrieves all users without caching
func (a *CachedUserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	return a.adapter.List(ctx)
}

// Delete deletes a user and invalidates its cache entry once the write commits
func (a *CachedUserAdapter) Delete(ctx context.Context, id int64) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	afterCommit(ctx, func() { a.invalidate(ctx, id) })
	return nil
}

func (a *CachedUserAdapter) invalidate(ctx context.Context, id int64) {
	if err := a.cache.Delete(ctx, userCacheKey(id)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Int64("user_id", id).Msg("Failed to invalidate cached user")
	}
}
