package postgres

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure DashboardRepo implements repository.DashboardRepository.
var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) Counts(ctx context.Context, dayStart, dayEnd time.Time) (*repository.DashboardCounts, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM products WHERE current_stock < min_stock),
		(SELECT COUNT(*) FROM products WHERE current_stock > max_stock),
		(SELECT COALESCE(SUM(quantity), 0)::bigint FROM stock_movements
			WHERE type = 'in' AND created_at >= $1 AND created_at < $2),
		(SELECT COALESCE(SUM(quantity), 0)::bigint FROM stock_movements
			WHERE type = 'out' AND created_at >= $1 AND created_at < $2),
		(SELECT COUNT(*) FROM alerts WHERE NOT is_read)`
	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, query, dayStart, dayEnd).Scan(
		&c.TotalProducts, &c.LowStockCount, &c.HighStockCount, &c.TodayIn, &c.TodayOut, &c.UnreadAlerts)
	if err != nil {
		return nil, storageErr("dashboard counts", err)
	}
	return &c, nil
}

// LowStockProducts ordena por faltante (min_stock − current_stock) descendente.
func (r *DashboardRepo) LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE current_stock < min_stock
		ORDER BY (min_stock - current_stock) DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	return NewProductRepository(r.q).getMany(ctx, query, args...)
}

// DailyMovements totaliza entradas/salidas por día local desde since (orden ascendente).
func (r *DashboardRepo) DailyMovements(ctx context.Context, since time.Time) ([]repository.DailyMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT date_trunc('hour', created_at), type, SUM(quantity)::bigint
		FROM stock_movements WHERE created_at >= $1 GROUP BY 1, 2`, since)
	if err != nil {
		return nil, storageErr("daily movements", err)
	}
	defer rows.Close()

	byDate := map[string]*repository.DailyMovement{}
	for rows.Next() {
		var (
			hour time.Time
			typ  string
			qty  int64
		)
		if err := rows.Scan(&hour, &typ, &qty); err != nil {
			return nil, storageErr("scan daily movements", err)
		}
		key := hour.Local().Format("2006-01-02")
		d, ok := byDate[key]
		if !ok {
			d = &repository.DailyMovement{Date: key}
			byDate[key] = d
		}
		if typ == entity.MovementTypeIn {
			d.TotalIn += qty
		} else {
			d.TotalOut += qty
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("daily movements", err)
	}

	out := make([]repository.DailyMovement, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// CategoryStats agrupa por categoría; vacía o NULL cuenta como "Sin categoría".
func (r *DashboardRepo) CategoryStats(ctx context.Context) ([]repository.CategoryStat, error) {
	query := `SELECT COALESCE(NULLIF(category, ''), $1) AS cat,
		COUNT(*),
		COALESCE(SUM(current_stock), 0)::bigint,
		COALESCE(SUM(current_stock * unit_price), 0)
		FROM products
		GROUP BY cat
		ORDER BY 2 DESC, 1 ASC`
	rows, err := r.q.Query(ctx, query, repository.UncategorizedCategory)
	if err != nil {
		return nil, storageErr("category stats", err)
	}
	defer rows.Close()

	out := make([]repository.CategoryStat, 0)
	for rows.Next() {
		var c repository.CategoryStat
		if err := rows.Scan(&c.Category, &c.ProductCount, &c.TotalStock, &c.StockValue); err != nil {
			return nil, storageErr("scan category stats", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("category stats", err)
	}
	return out, nil
}
