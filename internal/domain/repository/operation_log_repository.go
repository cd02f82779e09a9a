package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LogFilter filtros del listado del log de operaciones.
type LogFilter struct {
	Module string
	UserID int64
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// CountByKey fila agregada (clave → cantidad) para estadísticas.
type CountByKey struct {
	Key   string
	Count int64
}

// LogStats agregados del log desde una fecha.
type LogStats struct {
	ByModule []CountByKey
	ByAction []CountByKey // top 10
	ByUser   []CountByKey // top 10 por email
	ByDate   []CountByKey // clave YYYY-MM-DD
}

// OperationLogRepository define el puerto del log de auditoría.
type OperationLogRepository interface {
	Create(ctx context.Context, entry *entity.OperationLog) error
	List(ctx context.Context, filter LogFilter) ([]*entity.OperationLog, int64, error)
	Stats(ctx context.Context, since time.Time) (*LogStats, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
