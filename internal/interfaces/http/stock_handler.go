package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockHandler endpoints del motor de inventario: entradas, salidas, ajustes y consultas del ledger.
type StockHandler struct {
	stock   *inventory.StockUseCase
	queries *inventory.MovementQueryUseCase
	fx      sideEffects
}

// NewStockHandler construye el handler.
func NewStockHandler(
	stock *inventory.StockUseCase,
	queries *inventory.MovementQueryUseCase,
	audit *usecase.AuditUseCase,
	dash *analytics.DashboardUseCase,
) *StockHandler {
	return &StockHandler{stock: stock, queries: queries, fx: sideEffects{audit: audit, dash: dash}}
}

// In godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.MovementEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) In(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.stock.Receive(c.Context(), GetUserID(c), inventory.ReceiveInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Supplier:  in.Supplier,
		BatchNo:   in.BatchNo,
		Reason:    in.Reason,
	})
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionStockIn, entity.ModuleStock,
		fmt.Sprintf("entrada de %d unidades al producto %d (%d → %d)", mov.Quantity, mov.ProductID, mov.BeforeStock, mov.AfterStock))
	return c.Status(fiber.StatusCreated).JSON(dto.MovementEnvelope{Message: "entrada registrada", Movement: mov})
}

// Out godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.MovementEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/stock/out [post]
func (h *StockHandler) Out(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.stock.Issue(c.Context(), GetUserID(c), inventory.IssueInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Department: in.Department,
		Reason:     in.Reason,
	})
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionStockOut, entity.ModuleStock,
		fmt.Sprintf("salida de %d unidades del producto %d (%d → %d)", mov.Quantity, mov.ProductID, mov.BeforeStock, mov.AfterStock))
	return c.Status(fiber.StatusCreated).JSON(dto.MovementEnvelope{Message: "salida registrada", Movement: mov})
}

// Adjust godoc
// @Summary      Ajustar stock a un conteo físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "Producto, stock real y motivo"
// @Success      200   {object}  dto.AdjustEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ActualStock == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "actual_stock es requerido"})
	}
	res, err := h.stock.Adjust(c.Context(), GetUserID(c), inventory.AdjustInput{
		ProductID:   in.ProductID,
		ActualStock: *in.ActualStock,
		Reason:      in.Reason,
	})
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	if !res.Adjusted {
		adjusted := false
		return c.JSON(dto.AdjustEnvelope{Message: "el stock real coincide con el del sistema, sin ajuste", Adjusted: &adjusted})
	}
	adj := res.Adjustment
	h.fx.changed(c.Context())
	h.fx.record(c, ActionAdjust, entity.ModuleStock,
		fmt.Sprintf("ajuste del producto %d: %d → %d (%s)", adj.ProductID, adj.BeforeStock, adj.AfterStock, adj.Reason))
	return c.JSON(dto.AdjustEnvelope{Message: "ajuste registrado", Adjustment: adj})
}

// Movements godoc
// @Summary      Listar movimientos del ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        type        query  string  false  "in | out"
// @Param        start_date  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date    query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.queries.List(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        type        query  string  false  "in | out"
// @Param        start_date  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pdf, filename, err := h.queries.Report(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// LedgerCheck godoc
// @Summary      Verificar que el stock coincide con la suma del ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/ledger-check/{product_id} [get]
func (h *StockHandler) LedgerCheck(c *fiber.Ctx) error {
	id, ok := paramID(c, "product_id")
	if !ok {
		return invalidID(c, "product_id")
	}
	out, err := h.stock.LedgerCheck(c.Context(), id)
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}
