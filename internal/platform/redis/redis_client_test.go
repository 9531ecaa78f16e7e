package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "90s")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "cache:6380", cfg.Addr())
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 90*time.Second, cfg.TTL)
}

func TestLoadConfigFromEnv_DefaultPort(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("CACHE_TTL", "")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "cache:6379", cfg.Addr())
	assert.Zero(t, cfg.DB)
	assert.Zero(t, cfg.TTL)
}

// TestNewRedisClient_NotConfigured returns ErrNotConfigured without dialing.
func TestNewRedisClient_NotConfigured(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), Config{})

	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, rdb)
}
