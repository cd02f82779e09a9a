package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas de umbral.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// List devuelve las alertas más recientes; isRead nil = todas.
	List(ctx context.Context, isRead *bool, limit int) ([]*entity.AlertDetail, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteRead(ctx context.Context) (int64, error)
}
