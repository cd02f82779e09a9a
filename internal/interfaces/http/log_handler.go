package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LogHandler consulta y mantenimiento del log de operaciones.
type LogHandler struct {
	uc *usecase.AuditUseCase
	fx sideEffects
}

func NewLogHandler(uc *usecase.AuditUseCase) *LogHandler {
	return &LogHandler{uc: uc, fx: sideEffects{audit: uc}}
}

// List godoc
// @Summary      Listar log de operaciones (paginado)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        page_size   query  int     false  "Tamaño de página"  default(50)
// @Param        module      query  string  false  "Módulo"
// @Param        user_id     query  int     false  "Usuario"
// @Param        start_date  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {object}  dto.LogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	var in dto.LogListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del log
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200  {object}  dto.LogStatsResponse
// @Router       /api/logs/stats [get]
func (h *LogHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Cleanup godoc
// @Summary      Eliminar entradas antiguas del log (solo admin)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Retención en días (por defecto la configurada)"
// @Success      200  {object}  dto.AffectedResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs/cleanup [delete]
func (h *LogHandler) Cleanup(c *fiber.Ctx) error {
	n, err := h.uc.Cleanup(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err, "")
	}
	h.fx.record(c, ActionCleanup, entity.ModuleSystem, fmt.Sprintf("eliminó %d entradas antiguas del log", n))
	return c.JSON(dto.AffectedResponse{Message: "log depurado", Count: n})
}
