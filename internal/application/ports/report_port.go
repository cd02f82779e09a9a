package ports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementReport datos de entrada del reporte de movimientos.
type MovementReport struct {
	Title       string
	GeneratedAt time.Time
	From        *time.Time
	To          *time.Time
	Movements   []*entity.StockMovementDetail
}

// MovementReportGenerator puerto de salida para renderizar el reporte de movimientos (PDF).
type MovementReportGenerator interface {
	GenerateMovementReport(ctx context.Context, report MovementReport) ([]byte, error)
}
