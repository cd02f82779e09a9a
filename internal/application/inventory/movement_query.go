package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

// MovementQueryUseCase lecturas del ledger: listado filtrado y reporte PDF.
type MovementQueryUseCase struct {
	movRepo   repository.StockMovementRepository
	generator ports.MovementReportGenerator
	now       func() time.Time
}

// NewMovementQueryUseCase construye el caso de uso. generator puede ser nil (sin reporte PDF).
func NewMovementQueryUseCase(movRepo repository.StockMovementRepository, generator ports.MovementReportGenerator) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, generator: generator, now: time.Now}
}

// List devuelve los movimientos más recientes que cumplen el filtro.
func (uc *MovementQueryUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	filter, err := buildMovementFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// Report genera el PDF de los movimientos filtrados y su nombre de archivo.
func (uc *MovementQueryUseCase) Report(ctx context.Context, in dto.MovementListRequest) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("%w: reporte PDF no disponible", domain.ErrInvalidInput)
	}
	if in.Limit <= 0 {
		in.Limit = maxMovementLimit
	}
	filter, err := buildMovementFilter(in)
	if err != nil {
		return nil, "", err
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdfBytes, err = uc.generator.GenerateMovementReport(ctx, ports.MovementReport{
		Title:       "Reporte de movimientos de inventario",
		GeneratedAt: now,
		From:        filter.From,
		To:          filter.To,
		Movements:   list,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("movimientos_%s.pdf", now.Format("20060102_150405")), nil
}

func buildMovementFilter(in dto.MovementListRequest) (repository.MovementFilter, error) {
	f := repository.MovementFilter{ProductID: in.ProductID, Limit: in.Limit}
	if in.ProductID < 0 {
		return f, domain.ErrInvalidInput
	}
	switch t := strings.TrimSpace(in.Type); t {
	case "":
	case entity.MovementTypeIn, entity.MovementTypeOut:
		f.Type = t
	default:
		return f, fmt.Errorf("%w: type debe ser in u out", domain.ErrInvalidInput)
	}
	if f.Limit <= 0 {
		f.Limit = defaultMovementLimit
	}
	if f.Limit > maxMovementLimit {
		f.Limit = maxMovementLimit
	}
	var err error
	if f.From, err = ParseDateBound(in.StartDate, false); err != nil {
		return f, err
	}
	if f.To, err = ParseDateBound(in.EndDate, true); err != nil {
		return f, err
	}
	return f, nil
}

// ParseDateBound interpreta YYYY-MM-DD o RFC3339. Con endOfDay, una fecha sin hora
// se extiende al final del día (rango inclusivo). Vacío = sin límite.
func ParseDateBound(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
