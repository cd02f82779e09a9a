package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AdjustReasonPrefix antecede al motivo en los movimientos generados por un ajuste.
const AdjustReasonPrefix = "Ajuste de inventario: "

// ReceiveInput entrada de stock (compra, devolución).
type ReceiveInput struct {
	ProductID int64
	Quantity  int64
	Supplier  string
	BatchNo   string
	Reason    string
}

// IssueInput salida de stock (consumo, venta).
type IssueInput struct {
	ProductID  int64
	Quantity   int64
	Department string
	Reason     string
}

// AdjustInput ajuste por conteo físico: ActualStock reemplaza al stock del sistema.
type AdjustInput struct {
	ProductID   int64
	ActualStock int64
	Reason      string
}

// StockUseCase es el motor de inventario: lee el stock, valida, actualiza el contador,
// agrega el movimiento al ledger y evalúa umbrales como una sola unidad atómica.
//
// Las mutaciones sobre un mismo producto se serializan con un mutex en proceso y, dentro
// de la transacción, con el bloqueo de fila (SELECT FOR UPDATE).
type StockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	locks       *productLocks
	now         func() time.Time
}

// NewStockUseCase construye el motor de inventario.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		locks:       newProductLocks(),
		now:         time.Now,
	}
}

// Receive registra una entrada: after = before + quantity.
func (uc *StockUseCase) Receive(ctx context.Context, operatorID int64, in ReceiveInput) (*dto.MovementResponse, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.StockMovement{
		ProductID:  in.ProductID,
		Type:       entity.MovementTypeIn,
		Quantity:   in.Quantity,
		OperatorID: operatorID,
		Supplier:   strings.TrimSpace(in.Supplier),
		BatchNo:    strings.TrimSpace(in.BatchNo),
		Reason:     strings.TrimSpace(in.Reason),
	}
	err := uc.mutate(ctx, in.ProductID, func(product *entity.Product) (*entity.StockMovement, error) {
		mov.BeforeStock = product.CurrentStock
		mov.AfterStock = product.CurrentStock + in.Quantity
		return mov, nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewMovementResponse(mov), nil
}

// Issue registra una salida: falla con ErrInsufficientStock si before < quantity, sin escribir nada.
func (uc *StockUseCase) Issue(ctx context.Context, operatorID int64, in IssueInput) (*dto.MovementResponse, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.StockMovement{
		ProductID:  in.ProductID,
		Type:       entity.MovementTypeOut,
		Quantity:   in.Quantity,
		OperatorID: operatorID,
		Department: strings.TrimSpace(in.Department),
		Reason:     strings.TrimSpace(in.Reason),
	}
	err := uc.mutate(ctx, in.ProductID, func(product *entity.Product) (*entity.StockMovement, error) {
		if product.CurrentStock < in.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		mov.BeforeStock = product.CurrentStock
		mov.AfterStock = product.CurrentStock - in.Quantity
		return mov, nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewMovementResponse(mov), nil
}

// Adjust sobrescribe el stock con el conteo físico. Si coincide con el actual no escribe
// nada y devuelve Adjusted=false; si no, agrega un único movimiento in/out por |diferencia|.
func (uc *StockUseCase) Adjust(ctx context.Context, operatorID int64, in AdjustInput) (*dto.AdjustResult, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID <= 0 || in.ActualStock < 0 || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		mov    *entity.StockMovement
		before int64
	)
	err := uc.mutate(ctx, in.ProductID, func(product *entity.Product) (*entity.StockMovement, error) {
		before = product.CurrentStock
		diff := in.ActualStock - before
		if diff == 0 {
			return nil, nil
		}
		mov = &entity.StockMovement{
			ProductID:   in.ProductID,
			Type:        entity.MovementTypeIn,
			Quantity:    diff,
			BeforeStock: before,
			AfterStock:  in.ActualStock,
			OperatorID:  operatorID,
			Reason:      AdjustReasonPrefix + reason,
		}
		if diff < 0 {
			mov.Type = entity.MovementTypeOut
			mov.Quantity = -diff
		}
		return mov, nil
	})
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return &dto.AdjustResult{Adjusted: false}, nil
	}
	return &dto.AdjustResult{
		Adjusted: true,
		Adjustment: &dto.AdjustmentResponse{
			ProductID:   in.ProductID,
			BeforeStock: before,
			AfterStock:  in.ActualStock,
			Difference:  in.ActualStock - before,
			Reason:      reason,
			Movement:    dto.NewMovementResponse(mov),
		},
	}, nil
}

// LedgerCheck compara el contador current_stock con la suma con signo del ledger.
func (uc *StockUseCase) LedgerCheck(ctx context.Context, productID int64) (*dto.LedgerCheckResponse, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	sum, err := uc.movRepo.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerCheckResponse{
		ProductID:    productID,
		CurrentStock: product.CurrentStock,
		LedgerSum:    sum,
		Consistent:   sum == product.CurrentStock,
	}, nil
}

// planFunc decide el movimiento a partir de la foto bloqueada del producto.
// Devolver (nil, nil) significa "nada que escribir".
type planFunc func(product *entity.Product) (*entity.StockMovement, error)

// mutate ejecuta la sección crítica: bloqueo por producto, transacción, SELECT FOR UPDATE,
// plan, actualización del contador, movimiento y alerta. Cualquier error hace Rollback.
func (uc *StockUseCase) mutate(ctx context.Context, productID int64, plan planFunc) error {
	unlock := uc.locks.lock(productID)
	defer unlock()

	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		mov, err := plan(product)
		if err != nil || mov == nil {
			return err
		}
		if mov.AfterStock < 0 {
			return fmt.Errorf("stock resultante negativo para producto %d: %w", productID, domain.ErrInsufficientStock)
		}

		mov.CreatedAt = uc.now()
		if err := productRepo.UpdateStock(ctx, productID, mov.AfterStock); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		// Umbrales contra la foto previa al update (min/max no cambian en esta operación).
		if alert := inventory.CheckThreshold(product, mov.AfterStock); alert != nil {
			alert.CreatedAt = mov.CreatedAt
			if err := alertRepo.Create(ctx, alert); err != nil {
				return err
			}
		}
		return nil
	})
}

