package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 500
)

// AlertUseCase lectura y acuse de las alertas de umbral. Sin lógica de negocio adicional.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// List devuelve las alertas más recientes; isRead nil = todas.
func (uc *AlertUseCase) List(ctx context.Context, isRead *bool, limit int) (*dto.AlertListResponse, error) {
	if limit <= 0 {
		limit = defaultAlertLimit
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}
	list, err := uc.repo.List(ctx, isRead, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.NewAlertResponse(a))
	}
	return &dto.AlertListResponse{Items: items, Total: len(items)}, nil
}

// UnreadCount cantidad de alertas sin leer.
func (uc *AlertUseCase) UnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error) {
	n, err := uc.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: n}, nil
}

// MarkRead marca una alerta como leída.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca todas como leídas y devuelve cuántas cambiaron.
func (uc *AlertUseCase) MarkAllRead(ctx context.Context) (int64, error) {
	return uc.repo.MarkAllRead(ctx)
}

// Delete elimina una alerta.
func (uc *AlertUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

// ClearRead elimina todas las alertas leídas.
func (uc *AlertUseCase) ClearRead(ctx context.Context) (int64, error) {
	return uc.repo.DeleteRead(ctx)
}
