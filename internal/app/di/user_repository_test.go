package di

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"user_manager/internal/platform/cache"
)

func TestNewUserRepository(t *testing.T) {
	t.Parallel()

	t.Run("without redis returns the gorm repository", func(t *testing.T) {
		repo := NewUserRepository(nil, &gorm.DB{}, time.Minute)

		_, cached := repo.(*cache.CachingUserRepository)
		assert.False(t, cached)
		assert.NotNil(t, repo)
	})

	t.Run("with redis returns the caching decorator", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		repo := NewUserRepository(rdb, &gorm.DB{}, time.Minute)

		assert.IsType(t, &cache.CachingUserRepository{}, repo)
	})
}
