package postgres

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure OperationLogRepo implements repository.OperationLogRepository.
var _ repository.OperationLogRepository = (*OperationLogRepo)(nil)

// OperationLogRepo persiste el log de auditoría.
type OperationLogRepo struct {
	q Querier
}

func NewOperationLogRepository(q Querier) *OperationLogRepo {
	return &OperationLogRepo{q: q}
}

func (r *OperationLogRepo) Create(ctx context.Context, e *entity.OperationLog) error {
	var userID *int64
	if e.UserID > 0 {
		userID = &e.UserID
	}
	err := r.q.QueryRow(ctx, `INSERT INTO operation_logs (user_id, user_email, action, module, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userID, nullIfEmpty(e.UserEmail), e.Action, e.Module, nullIfEmpty(e.Details), nullIfEmpty(e.IPAddress), e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return storageErr("create operation log", err)
	}
	return nil
}

// List devuelve la página pedida y el total de filas que cumplen el filtro.
func (r *OperationLogRepo) List(ctx context.Context, f repository.LogFilter) ([]*entity.OperationLog, int64, error) {
	var w whereBuilder
	if f.Module != "" {
		w.add("l.module = $%d", f.Module)
	}
	if f.UserID > 0 {
		w.add("l.user_id = $%d", f.UserID)
	}
	if f.From != nil {
		w.add("l.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("l.created_at <= $%d", *f.To)
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM operation_logs l`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, storageErr("count operation logs", err)
	}

	query := `SELECT l.id, COALESCE(l.user_id, 0), COALESCE(l.user_email, ''), l.action, l.module,
		COALESCE(l.details, ''), COALESCE(l.ip_address, ''), l.created_at, COALESCE(u.name, '')
		FROM operation_logs l
		LEFT JOIN users u ON u.id = l.user_id` + w.sql() + `
		ORDER BY l.created_at DESC, l.id DESC`
	if f.Limit > 0 {
		query += " LIMIT " + w.next(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + w.next(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, storageErr("list operation logs", err)
	}
	defer rows.Close()

	out := make([]*entity.OperationLog, 0)
	for rows.Next() {
		var l entity.OperationLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.UserEmail, &l.Action, &l.Module,
			&l.Details, &l.IPAddress, &l.CreatedAt, &l.UserName); err != nil {
			return nil, 0, storageErr("scan operation log", err)
		}
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("list operation logs", err)
	}
	return out, total, nil
}

// Stats agrega desde since: por módulo, top 10 acciones, top 10 usuarios y por día (hora local).
func (r *OperationLogRepo) Stats(ctx context.Context, since time.Time) (*repository.LogStats, error) {
	out := &repository.LogStats{}
	var err error
	if out.ByModule, err = r.countBy(ctx, `SELECT module, COUNT(*) FROM operation_logs
		WHERE created_at >= $1 GROUP BY module ORDER BY 2 DESC, 1 ASC`, since); err != nil {
		return nil, err
	}
	if out.ByAction, err = r.countBy(ctx, `SELECT action, COUNT(*) FROM operation_logs
		WHERE created_at >= $1 GROUP BY action ORDER BY 2 DESC, 1 ASC LIMIT 10`, since); err != nil {
		return nil, err
	}
	if out.ByUser, err = r.countBy(ctx, `SELECT user_email, COUNT(*) FROM operation_logs
		WHERE created_at >= $1 AND COALESCE(user_email, '') <> '' GROUP BY user_email ORDER BY 2 DESC, 1 ASC LIMIT 10`, since); err != nil {
		return nil, err
	}

	// Agregamos por hora en SQL y por día local en Go: el día no depende del TimeZone de la sesión.
	rows, err := r.q.Query(ctx, `SELECT date_trunc('hour', created_at), COUNT(*) FROM operation_logs
		WHERE created_at >= $1 GROUP BY 1`, since)
	if err != nil {
		return nil, storageErr("log stats by date", err)
	}
	defer rows.Close()
	byDate := map[string]int64{}
	for rows.Next() {
		var hour time.Time
		var n int64
		if err := rows.Scan(&hour, &n); err != nil {
			return nil, storageErr("scan log stats", err)
		}
		byDate[hour.Local().Format("2006-01-02")] += n
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("log stats by date", err)
	}
	out.ByDate = make([]repository.CountByKey, 0, len(byDate))
	for d, n := range byDate {
		out.ByDate = append(out.ByDate, repository.CountByKey{Key: d, Count: n})
	}
	sort.Slice(out.ByDate, func(i, j int) bool { return out.ByDate[i].Key < out.ByDate[j].Key })
	return out, nil
}

func (r *OperationLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM operation_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, storageErr("delete old operation logs", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OperationLogRepo) countBy(ctx context.Context, query string, args ...any) ([]repository.CountByKey, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("log stats", err)
	}
	defer rows.Close()
	out := make([]repository.CountByKey, 0)
	for rows.Next() {
		var c repository.CountByKey
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, storageErr("scan log stats", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("log stats", err)
	}
	return out, nil
}
