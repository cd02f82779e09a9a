package postgres

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure AlertRepo implements repository.AlertRepository.
var _ repository.AlertRepository = (*AlertRepo)(nil)

type AlertRepo struct {
	q Querier
}

func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	err := r.q.QueryRow(ctx, `INSERT INTO alerts (product_id, type, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.ProductID, a.Type, a.Message, a.IsRead, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return storageErr("create alert", err)
	}
	return nil
}

// List devuelve alertas con datos del producto; isRead nil = todas.
func (r *AlertRepo) List(ctx context.Context, isRead *bool, limit int) ([]*entity.AlertDetail, error) {
	var w whereBuilder
	if isRead != nil {
		w.add("a.is_read = $%d", *isRead)
	}
	query := `SELECT a.id, a.product_id, a.type, a.message, a.is_read, a.created_at,
		p.name, p.code, p.current_stock
		FROM alerts a
		JOIN products p ON p.id = a.product_id` + w.sql() + `
		ORDER BY a.created_at DESC, a.id DESC`
	if limit > 0 {
		query += " LIMIT " + w.next(limit)
	}

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, storageErr("list alerts", err)
	}
	defer rows.Close()

	out := make([]*entity.AlertDetail, 0)
	for rows.Next() {
		var d entity.AlertDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Type, &d.Message, &d.IsRead, &d.CreatedAt,
			&d.ProductName, &d.ProductCode, &d.CurrentStock); err != nil {
			return nil, storageErr("scan alert", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list alerts", err)
	}
	return out, nil
}

func (r *AlertRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE NOT is_read`).Scan(&n); err != nil {
		return 0, storageErr("count unread alerts", err)
	}
	return n, nil
}

func (r *AlertRepo) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return storageErr("mark alert read", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) MarkAllRead(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET is_read = true WHERE NOT is_read`)
	if err != nil {
		return 0, storageErr("mark all alerts read", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AlertRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete alert", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) DeleteRead(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE is_read`)
	if err != nil {
		return 0, storageErr("delete read alerts", err)
	}
	return tag.RowsAffected(), nil
}
