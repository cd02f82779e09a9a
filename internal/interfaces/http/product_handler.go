package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const productNotFound = "producto no encontrado"

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
	fx sideEffects
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, audit *usecase.AuditUseCase, dash *analytics.DashboardUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, fx: sideEffects{audit: audit, dash: dash}}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionCreate, entity.ModuleProducts, fmt.Sprintf("creó el producto %s (%s)", out.Code, out.Name))
	return c.Status(fiber.StatusCreated).JSON(dto.ProductEnvelope{Message: "producto creado", Product: out})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por código, nombre o categoría
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        keyword  path  string  true  "Texto a buscar"
// @Success      200      {object}  dto.ProductListResponse
// @Router       /api/products/search/{keyword} [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), c.Params("keyword"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial; el stock no se modifica aquí)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionUpdate, entity.ModuleProducts, fmt.Sprintf("actualizó el producto %s", out.Code))
	return c.JSON(dto.ProductEnvelope{Message: "producto actualizado", Product: out})
}

// Delete godoc
// @Summary      Eliminar producto (con sus movimientos y alertas)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, productNotFound)
	}
	h.fx.changed(c.Context())
	h.fx.record(c, ActionDelete, entity.ModuleProducts, fmt.Sprintf("eliminó el producto %d", id))
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}
