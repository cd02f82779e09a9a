package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ports"
)

// StatsKey clave donde se guardan los KPIs del tablero.
const StatsKey = "almacen:dashboard:stats"

// Ensure StatsCache implements ports.StatsCache.
var _ ports.StatsCache = (*StatsCache)(nil)

// StatsCache guarda las estadísticas del tablero en Redis con TTL corto.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStatsCache construye la caché; ttl <= 0 usa 30s.
func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsCache{client: client, ttl: ttl}
}

// GetStats devuelve (nil, nil) si la clave no existe o expiró.
func (c *StatsCache) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	raw, err := c.client.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", StatsKey, err)
	}
	var stats dto.DashboardStatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

func (c *StatsCache) SetStats(ctx context.Context, stats *dto.DashboardStatsResponse) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return c.client.Set(ctx, StatsKey, raw, c.ttl).Err()
}

// InvalidateStats borra la entrada; se llama tras cada mutación de stock o catálogo.
func (c *StatsCache) InvalidateStats(ctx context.Context) error {
	return c.client.Del(ctx, StatsKey).Err()
}
