// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"user_manager/internal/feature/user/domain/entity"
	"user_manager/internal/feature/user/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "users"
)

// CachingUserRepository decorates a UserRepository with Redis caching.
// Reads are served from Redis when possible; writes go to the inner repository
// first and invalidate the affected keys only after they succeed.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Save stores the user and drops the cached list.
func (c *CachingUserRepository) Save(ctx context.Context, user *entity.User) error {
	if err := c.inner.Save(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// FindByID checks the cache first, then falls back to the inner repository.
// Absence is not cached.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, bool, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	var cached entity.User
	if c.get(ctx, key, &cached) {
		return &cached, true, nil
	}

	u, found, err := c.inner.FindByID(ctx, id)
	if err != nil || !found {
		return u, found, err
	}
	c.set(ctx, key, u)
	return u, true, nil
}

// FindAll checks the cache first, then falls back to the inner repository.
func (c *CachingUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()
	var cached []entity.User
	if c.get(ctx, key, &cached) && cached != nil {
		return cached, nil
	}

	users, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, users)
	return users, nil
}

// Update stores the user and drops its cached entry and the cached list.
func (c *CachingUserRepository) Update(ctx context.Context, user *entity.User) error {
	if err := c.inner.Update(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx, c.idKey(user.ID), c.listKey())
	return nil
}

// Delete removes the user and drops its cached entry and the cached list.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := c.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		c.invalidate(ctx, c.idKey(id), c.listKey())
	}
	return deleted, nil
}

// get decodes the value at key into dst. A corrupted entry is deleted.
func (c *CachingUserRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v at key (best effort).
func (c *CachingUserRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate deletes keys (best effort).
func (c *CachingUserRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *CachingUserRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingUserRepository) listKey() string {
	return c.namespace + ":all"
}
