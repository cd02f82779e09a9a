package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UncategorizedCategory agrupa los productos sin categoría en los reportes.
const UncategorizedCategory = "Sin categoría"

// DashboardCounts conteos en vivo del tablero (recalculados en cada consulta,
// independientes de las alertas guardadas).
type DashboardCounts struct {
	TotalProducts  int64
	LowStockCount  int64
	HighStockCount int64
	TodayIn        int64
	TodayOut       int64
	UnreadAlerts   int64
}

// DailyMovement totales de entradas/salidas de un día (clave YYYY-MM-DD).
type DailyMovement struct {
	Date     string
	TotalIn  int64
	TotalOut int64
}

// CategoryStat agregado por categoría.
type CategoryStat struct {
	Category     string
	ProductCount int64
	TotalStock   int64
	StockValue   decimal.Decimal // Σ current_stock × unit_price
}

// DashboardRepository consultas de solo lectura para el tablero.
type DashboardRepository interface {
	// Counts calcula los KPIs; [dayStart, dayEnd) delimita "hoy".
	Counts(ctx context.Context, dayStart, dayEnd time.Time) (*DashboardCounts, error)
	// LowStockProducts productos con current_stock < min_stock, mayor déficit primero.
	LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	// DailyMovements totales por día desde since (días sin movimientos se omiten).
	DailyMovements(ctx context.Context, since time.Time) ([]DailyMovement, error)
	CategoryStats(ctx context.Context) ([]CategoryStat, error)
}
