package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Umbrales por defecto cuando el producto se crea sin min/max.
const (
	DefaultMinStock int64 = 0
	DefaultMaxStock int64 = 999999
)

// Product representa un producto del catálogo con su contador de stock.
// CurrentStock es una proyección cacheada del ledger (stock_movements); solo el motor
// de inventario lo modifica después de la creación.
type Product struct {
	ID           int64
	Code         string // clave de negocio única
	Name         string
	Category     string
	Unit         string
	MinStock     int64
	MaxStock     int64
	CurrentStock int64
	UnitPrice    decimal.Decimal // valorización del stock en reportes
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
