package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// memCache StatsCache en memoria para verificar el uso de la caché.
type memCache struct {
	stats       *dto.DashboardStatsResponse
	gets, sets  int
	failOnGet   bool
	invalidated int
}

func (c *memCache) GetStats(context.Context) (*dto.DashboardStatsResponse, error) {
	c.gets++
	if c.failOnGet {
		return nil, errors.New("redis caído")
	}
	return c.stats, nil
}

func (c *memCache) SetStats(_ context.Context, s *dto.DashboardStatsResponse) error {
	c.sets++
	c.stats = s
	return nil
}

func (c *memCache) InvalidateStats(context.Context) error {
	c.invalidated++
	c.stats = nil
	return nil
}

func seedInventory(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	engine := inventory.NewStockUseCase(store, store.Products(), store.Movements())
	now := time.Now()
	products := []*entity.Product{
		{Code: "A", Name: "Bajo", Category: "Ferretería", MinStock: 10, MaxStock: 100, UnitPrice: decimal.RequireFromString("2.50")},
		{Code: "B", Name: "Muy bajo", Category: "Ferretería", MinStock: 50, MaxStock: 100, UnitPrice: decimal.NewFromInt(1)},
		{Code: "C", Name: "Exceso", Category: "Oficina", MinStock: 0, MaxStock: 5, UnitPrice: decimal.NewFromInt(10)},
		{Code: "D", Name: "Sin categoría", MinStock: 0, MaxStock: 100},
	}
	for _, p := range products {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, store.Products().Create(ctx, p))
	}
	receive := func(id, q int64) {
		_, err := engine.Receive(ctx, 1, inventory.ReceiveInput{ProductID: id, Quantity: q})
		require.NoError(t, err)
	}
	receive(products[0].ID, 4)
	receive(products[1].ID, 2)
	receive(products[2].ID, 8)
	_, err := engine.Issue(ctx, 1, inventory.IssueInput{ProductID: products[2].ID, Quantity: 1})
	require.NoError(t, err)
	return store
}

func TestDashboard_Stats(t *testing.T) {
	store := seedInventory(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), nil, nil)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.HighStockCount)
	assert.Equal(t, int64(14), stats.TodayIn)
	assert.Equal(t, int64(1), stats.TodayOut)
	assert.Equal(t, int64(4), stats.UnreadAlerts, "A, B, C(entrada) y C(salida) generan alerta")
}

func TestDashboard_StatsUsaCache(t *testing.T) {
	store := seedInventory(t)
	cache := &memCache{}
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), cache, nil)
	ctx := context.Background()

	first, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "el segundo pedido se sirve desde caché")

	uc.Invalidate(ctx)
	assert.Equal(t, 1, cache.invalidated)
	_, err = uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

func TestDashboard_StatsCacheCaidaNoFalla(t *testing.T) {
	store := seedInventory(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), &memCache{failOnGet: true}, nil)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProducts)
}

func TestDashboard_LowStockOrdenPorDeficit(t *testing.T) {
	store := seedInventory(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), nil, nil)

	list, err := uc.LowStockProducts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Code)
	assert.Equal(t, int64(48), list[0].Shortage)
	assert.Equal(t, "A", list[1].Code)
}

func TestDashboard_StockTrendSieteDias(t *testing.T) {
	store := seedInventory(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), nil, nil)

	trend, err := uc.StockTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend, 7)
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, trend[6].Date, "el último punto es hoy")
	assert.Equal(t, int64(14), trend[6].TotalIn)
	assert.Equal(t, int64(1), trend[6].TotalOut)
	for _, p := range trend[:6] {
		assert.Zero(t, p.TotalIn)
		assert.Zero(t, p.TotalOut)
	}
	assert.Less(t, trend[0].Date, trend[6].Date)
}

func TestDashboard_CategoryStats(t *testing.T) {
	store := seedInventory(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), nil, nil)

	stats, err := uc.CategoryStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "Ferretería", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].ProductCount)
	assert.Equal(t, int64(6), stats[0].TotalStock)
	assert.True(t, decimal.NewFromInt(12).Equal(stats[0].StockValue), "4×2.50 + 2×1")

	var sinCategoria bool
	for _, s := range stats {
		if s.Category == repository.UncategorizedCategory {
			sinCategoria = true
		}
	}
	assert.True(t, sinCategoria)
}

func TestDashboard_RecentMovements(t *testing.T) {
	store := seedInventory(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Movements(), nil, nil)

	res, err := uc.RecentMovements(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, entity.MovementTypeOut, res.Items[0].Type)
}
