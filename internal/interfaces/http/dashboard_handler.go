package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero. Todas las rutas son de solo lectura.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      KPIs del tablero
// @Description  Total de productos, bajo mínimo, sobre máximo, entradas y salidas de hoy y alertas sin leer.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// RecentMovements godoc
// @Summary      Últimos movimientos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/dashboard/recent-movements [get]
func (h *DashboardHandler) RecentMovements(c *fiber.Ctx) error {
	out, err := h.uc.RecentMovements(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// LowStockProducts godoc
// @Summary      Productos bajo el stock mínimo (mayor faltante primero)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {array}  dto.LowStockProductResponse
// @Router       /api/dashboard/low-stock-products [get]
func (h *DashboardHandler) LowStockProducts(c *fiber.Ctx) error {
	out, err := h.uc.LowStockProducts(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// StockTrend godoc
// @Summary      Entradas y salidas por día (últimos 7 días)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockTrendPoint
// @Router       /api/dashboard/stock-trend [get]
func (h *DashboardHandler) StockTrend(c *fiber.Ctx) error {
	out, err := h.uc.StockTrend(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// CategoryStats godoc
// @Summary      Productos, stock y valorización por categoría
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryStatResponse
// @Router       /api/dashboard/category-stats [get]
func (h *DashboardHandler) CategoryStats(c *fiber.Ctx) error {
	out, err := h.uc.CategoryStats(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
