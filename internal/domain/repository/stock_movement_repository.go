package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Campos cero = sin filtro.
type MovementFilter struct {
	ProductID int64
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// StockMovementRepository define el puerto del ledger (append-only: no hay Update ni Delete).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovementDetail, error)
	// SumByProduct devuelve la suma con signo de todos los movimientos del producto.
	SumByProduct(ctx context.Context, productID int64) (int64, error)
}
