package postgres

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure StockMovementRepo implements repository.StockMovementRepository.
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste el ledger de entradas y salidas (solo inserción).
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (product_id, type, quantity, before_stock, after_stock,
		operator_id, supplier, department, batch_no, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Type, m.Quantity, m.BeforeStock, m.AfterStock, m.OperatorID,
		nullIfEmpty(m.Supplier), nullIfEmpty(m.Department), nullIfEmpty(m.BatchNo), nullIfEmpty(m.Reason),
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return storageErr("create movement", err)
	}
	return nil
}

// List devuelve movimientos con nombre/código de producto y nombre del operador, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	var w whereBuilder
	if f.ProductID > 0 {
		w.add("m.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("m.type = $%d", f.Type)
	}
	if f.From != nil {
		w.add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("m.created_at <= $%d", *f.To)
	}
	query := `SELECT m.id, m.product_id, m.type, m.quantity, m.before_stock, m.after_stock, m.operator_id,
		COALESCE(m.supplier, ''), COALESCE(m.department, ''), COALESCE(m.batch_no, ''), COALESCE(m.reason, ''),
		m.created_at, p.name, p.code, COALESCE(u.name, '')
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.operator_id` + w.sql() + `
		ORDER BY m.created_at DESC, m.id DESC`
	if f.Limit > 0 {
		query += " LIMIT " + w.next(f.Limit)
	}

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	defer rows.Close()

	out := make([]*entity.StockMovementDetail, 0)
	for rows.Next() {
		var d entity.StockMovementDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Type, &d.Quantity, &d.BeforeStock, &d.AfterStock,
			&d.OperatorID, &d.Supplier, &d.Department, &d.BatchNo, &d.Reason, &d.CreatedAt,
			&d.ProductName, &d.ProductCode, &d.OperatorName); err != nil {
			return nil, storageErr("scan movement", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list movements", err)
	}
	return out, nil
}

// SumByProduct devuelve Σ entradas − Σ salidas del producto.
func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID int64) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE -quantity END), 0)::bigint
		FROM stock_movements WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return 0, storageErr("sum movements", err)
	}
	return sum, nil
}
