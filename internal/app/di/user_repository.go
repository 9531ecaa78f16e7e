// Package di wires concrete implementations behind the usecase interfaces.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"user_manager/internal/feature/user/adapters"
	"user_manager/internal/feature/user/usecase"
	"user_manager/internal/platform/cache"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, the GORM repository is wrapped with the Redis cache.
// Otherwise, the GORM repository is used directly.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.UserRepository {
	repo := adapters.NewUserRepository(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, ttl, repo, "users")
	}
	return repo
}
