// Package analytics contiene los casos de uso de lectura del tablero de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
	trendDays        = 7
)

// DashboardUseCase agrega KPIs y listados del tablero.
//
// Fuente de datos: DashboardRepository y el ledger (consultas read-only, sin aislamiento extra).
// Los KPIs pueden servirse desde StatsCache; los listados siempre se leen en vivo.
type DashboardUseCase struct {
	repo    repository.DashboardRepository
	movRepo repository.StockMovementRepository
	cache   ports.StatsCache
	log     *logger.Logger
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	repo repository.DashboardRepository,
	movRepo repository.StockMovementRepository,
	cache ports.StatsCache,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		repo:    repo,
		movRepo: movRepo,
		cache:   cache,
		log:     log.Component("dashboard"),
		now:     time.Now,
	}
}

// Stats KPIs: totales, stock bajo/exceso (comparados en vivo contra umbrales), entradas/salidas
// de hoy y alertas sin leer. Un fallo de caché se registra y se recalcula desde la BD.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetStats(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché de estadísticas no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	// Hoy: [00:00, 00:00 del día siguiente)
	todayStart := startOfDay(uc.now())
	counts, err := uc.repo.Counts(ctx, todayStart, todayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", err)
	}
	stats := &dto.DashboardStatsResponse{
		TotalProducts:  counts.TotalProducts,
		LowStockCount:  counts.LowStockCount,
		HighStockCount: counts.HighStockCount,
		TodayIn:        counts.TodayIn,
		TodayOut:       counts.TodayOut,
		UnreadAlerts:   counts.UnreadAlerts,
	}
	if uc.cache != nil {
		if err := uc.cache.SetStats(ctx, stats); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar estadísticas en caché")
		}
	}
	return stats, nil
}

// Invalidate descarta los KPIs cacheados (después de una mutación de stock o alertas).
func (uc *DashboardUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateStats(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de estadísticas")
	}
}

// RecentMovements últimos movimientos con producto y operador.
func (uc *DashboardUseCase) RecentMovements(ctx context.Context, limit int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{Limit: clampLimit(limit)})
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", err)
	}
	return dto.NewMovementListResponse(list), nil
}

// LowStockProducts productos bajo mínimo, mayor déficit primero.
func (uc *DashboardUseCase) LowStockProducts(ctx context.Context, limit int) ([]dto.LowStockProductResponse, error) {
	list, err := uc.repo.LowStockProducts(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", err)
	}
	out := make([]dto.LowStockProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.LowStockProductResponse{
			ID:           p.ID,
			Code:         p.Code,
			Name:         p.Name,
			Category:     p.Category,
			Unit:         p.Unit,
			MinStock:     p.MinStock,
			CurrentStock: p.CurrentStock,
			Shortage:     p.MinStock - p.CurrentStock,
		})
	}
	return out, nil
}

// StockTrend entradas/salidas de los últimos 7 días (hoy incluido), un punto por día
// en orden cronológico; los días sin movimientos van en cero.
func (uc *DashboardUseCase) StockTrend(ctx context.Context) ([]dto.StockTrendPoint, error) {
	first := startOfDay(uc.now()).AddDate(0, 0, -(trendDays - 1))
	rows, err := uc.repo.DailyMovements(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tendencia: %w", err)
	}
	byDate := make(map[string]repository.DailyMovement, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}
	out := make([]dto.StockTrendPoint, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		key := first.AddDate(0, 0, i).Format("2006-01-02")
		r := byDate[key]
		out = append(out, dto.StockTrendPoint{Date: key, TotalIn: r.TotalIn, TotalOut: r.TotalOut})
	}
	return out, nil
}

// CategoryStats agregado por categoría con valorización del stock.
func (uc *DashboardUseCase) CategoryStats(ctx context.Context) ([]dto.CategoryStatResponse, error) {
	rows, err := uc.repo.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: categorías: %w", err)
	}
	out := make([]dto.CategoryStatResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryStatResponse{
			Category:     r.Category,
			ProductCount: r.ProductCount,
			TotalStock:   r.TotalStock,
			StockValue:   r.StockValue.Round(2),
		})
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
