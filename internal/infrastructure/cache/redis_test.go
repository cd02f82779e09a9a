package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func TestNewRedisClient_SinServidor_RetornaError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "redis connection failed")
}

// Un Redis caído se reporta como error; el tablero decide si lo ignora.
func TestStatsCache_RedisCaido_PropagaError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	c := cache.NewStatsCache(client, time.Second)

	ctx := context.Background()
	got, err := c.GetStats(ctx)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Error(t, c.SetStats(ctx, &dto.DashboardStatsResponse{TotalProducts: 1}))
	assert.Error(t, c.InvalidateStats(ctx))
}

func TestStatsCache_Key(t *testing.T) {
	require.Equal(t, "almacen:dashboard:stats", cache.StatsKey)
}
