package ports

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// StatsCache caché de corta vida para los KPIs del tablero.
// Get devuelve (nil, nil) en un miss; un error de caché nunca debe impedir la respuesta.
type StatsCache interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	SetStats(ctx context.Context, stats *dto.DashboardStatsResponse) error
	InvalidateStats(ctx context.Context) error
}
