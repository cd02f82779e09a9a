package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const alertNotFound = "alerta no encontrada"

// AlertHandler bandeja de alertas de umbral.
type AlertHandler struct {
	uc *usecase.AlertUseCase
	fx sideEffects
}

func NewAlertHandler(uc *usecase.AlertUseCase, audit *usecase.AuditUseCase, dash *analytics.DashboardUseCase) *AlertHandler {
	return &AlertHandler{uc: uc, fx: sideEffects{audit: audit, dash: dash}}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        is_read  query  bool  false  "Filtrar por leídas / no leídas"
// @Param        limit    query  int   false  "Límite"  default(50)
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "is_read debe ser true o false"})
		}
		isRead = &v
	}
	out, err := h.uc.List(c.Context(), isRead, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// UnreadCount godoc
// @Summary      Cantidad de alertas sin leer
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/alerts/unread-count [get]
func (h *AlertHandler) UnreadCount(c *fiber.Ctx) error {
	out, err := h.uc.UnreadCount(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [put]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.MarkRead(c.Context(), id); err != nil {
		return writeError(c, err, alertNotFound)
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionMarkRead, entity.ModuleAlerts, fmt.Sprintf("marcó como leída la alerta %d", id))
	return c.JSON(dto.MessageResponse{Message: "alerta marcada como leída"})
}

// MarkAllRead godoc
// @Summary      Marcar todas las alertas como leídas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AffectedResponse
// @Router       /api/alerts/mark-all-read [put]
func (h *AlertHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionMarkAllRead, entity.ModuleAlerts, fmt.Sprintf("marcó %d alertas como leídas", n))
	return c.JSON(dto.AffectedResponse{Message: "alertas marcadas como leídas", Count: n})
}

// Delete godoc
// @Summary      Eliminar alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, alertNotFound)
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionDelete, entity.ModuleAlerts, fmt.Sprintf("eliminó la alerta %d", id))
	return c.JSON(dto.MessageResponse{Message: "alerta eliminada"})
}

// ClearRead godoc
// @Summary      Eliminar todas las alertas leídas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AffectedResponse
// @Router       /api/alerts/clear-read [delete]
func (h *AlertHandler) ClearRead(c *fiber.Ctx) error {
	n, err := h.uc.ClearRead(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	h.fx.record(c, ActionClearRead, entity.ModuleAlerts, fmt.Sprintf("eliminó %d alertas leídas", n))
	return c.JSON(dto.AffectedResponse{Message: "alertas leídas eliminadas", Count: n})
}
