package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicia en 0.
type CreateProductRequest struct {
	Code      string           `json:"code" validate:"required"`
	Name      string           `json:"name" validate:"required"`
	Category  string           `json:"category"`
	Unit      string           `json:"unit"`
	MinStock  *int64           `json:"min_stock"`
	MaxStock  *int64           `json:"max_stock"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	ImageURL  string           `json:"image_url"`
}

// UpdateProductRequest actualización parcial (sin current_stock: solo lo cambia el motor de inventario).
type UpdateProductRequest struct {
	Code      *string          `json:"code"`
	Name      *string          `json:"name"`
	Category  *string          `json:"category"`
	Unit      *string          `json:"unit"`
	MinStock  *int64           `json:"min_stock"`
	MaxStock  *int64           `json:"max_stock"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	ImageURL  *string          `json:"image_url"`
}

// IsEmpty indica que no se envió ningún campo reconocido.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Code == nil && r.Name == nil && r.Category == nil && r.Unit == nil &&
		r.MinStock == nil && r.MaxStock == nil && r.UnitPrice == nil && r.ImageURL == nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
	CurrentStock int64           `json:"current_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ImageURL     string          `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductEnvelope respuesta de creación/actualización con mensaje.
type ProductEnvelope struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product"`
}
