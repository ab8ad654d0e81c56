package cache_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/cache"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
)

func redisConfig(t *testing.T, mr *miniredis.Miniredis) config.RedisConfig {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return config.RedisConfig{Host: mr.Host(), Port: port}
}

func TestNewRedisClient(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := cache.NewRedisClient(context.Background(), redisConfig(t, mr))

		require.NoError(t, err)
		defer client.Close()
		assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	})

	t.Run("fails when server is gone", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := redisConfig(t, mr)
		mr.Close()

		client, err := cache.NewRedisClient(context.Background(), cfg)

		assert.Nil(t, client)
		assert.Error(t, err)
	})
}
