package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 200
	defaultStatsDays   = 7
	defaultRetention   = 30
	auditWriteTimeout  = 5 * time.Second
)

// AuditUseCase log de operaciones. Las escrituras son best-effort: corren en segundo plano,
// los fallos se registran en el logger y nunca llegan a quien originó la operación.
type AuditUseCase struct {
	repo          repository.OperationLogRepository
	log           *logger.Logger
	retentionDays int
	now           func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditUseCase construye el caso de uso. retentionDays <= 0 usa 30 días.
func NewAuditUseCase(repo repository.OperationLogRepository, log *logger.Logger, retentionDays int) *AuditUseCase {
	if retentionDays <= 0 {
		retentionDays = defaultRetention
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuditUseCase{
		repo:          repo,
		log:           log.Component("auditoria"),
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Record encola la escritura de una entrada. No bloquea ni devuelve error.
// Después de Close las entradas se descartan con un aviso.
func (uc *AuditUseCase) Record(entry entity.OperationLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = uc.now()
	}
	uc.mu.Lock()
	if uc.closed {
		uc.mu.Unlock()
		uc.log.Warn().Str("action", entry.Action).Msg("log de operaciones cerrado, entrada descartada")
		return
	}
	uc.wg.Add(1)
	uc.mu.Unlock()

	go func() {
		defer uc.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := uc.repo.Create(ctx, &entry); err != nil {
			uc.log.Error().Err(err).
				Str("module", entry.Module).
				Str("action", entry.Action).
				Int64("user_id", entry.UserID).
				Msg("no se pudo registrar la operación")
		}
	}()
}

// Close espera las escrituras en curso (apagado ordenado).
func (uc *AuditUseCase) Close() {
	uc.mu.Lock()
	uc.closed = true
	uc.mu.Unlock()
	uc.wg.Wait()
}

// List devuelve una página del log, más recientes primero.
func (uc *AuditUseCase) List(ctx context.Context, in dto.LogListRequest) (*dto.LogListResponse, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size <= 0 {
		size = defaultLogPageSize
	}
	if size > maxLogPageSize {
		size = maxLogPageSize
	}
	from, err := inventory.ParseDateBound(in.StartDate, false)
	if err != nil {
		return nil, err
	}
	to, err := inventory.ParseDateBound(in.EndDate, true)
	if err != nil {
		return nil, err
	}
	if in.UserID < 0 {
		return nil, domain.ErrInvalidInput
	}
	logs, total, err := uc.repo.List(ctx, repository.LogFilter{
		Module: strings.TrimSpace(in.Module),
		UserID: in.UserID,
		From:   from,
		To:     to,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OperationLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.NewOperationLogResponse(l))
	}
	return &dto.LogListResponse{Logs: items, Total: total, Page: page, PageSize: size}, nil
}

// Stats agregados de los últimos days días (por defecto 7).
func (uc *AuditUseCase) Stats(ctx context.Context, days int) (*dto.LogStatsResponse, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	since := uc.now().AddDate(0, 0, -days)
	stats, err := uc.repo.Stats(ctx, since)
	if err != nil {
		return nil, err
	}
	return &dto.LogStatsResponse{
		Days:     days,
		ByModule: toCountItems(stats.ByModule),
		ByAction: toCountItems(stats.ByAction),
		ByUser:   toCountItems(stats.ByUser),
		ByDate:   toCountItems(stats.ByDate),
	}, nil
}

// Cleanup elimina entradas con más de days días (days <= 0 usa la retención configurada).
func (uc *AuditUseCase) Cleanup(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = uc.retentionDays
	}
	return uc.repo.DeleteOlderThan(ctx, uc.now().AddDate(0, 0, -days))
}

func toCountItems(in []repository.CountByKey) []dto.CountItem {
	out := make([]dto.CountItem, 0, len(in))
	for _, c := range in {
		out = append(out, dto.CountItem{Key: c.Key, Count: c.Count})
	}
	return out
}
