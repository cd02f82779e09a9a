package entity

import "time"

// Tipos de alerta de umbral.
const (
	AlertTypeLowStock  = "low_stock"
	AlertTypeHighStock = "high_stock"
)

// Alert aviso de umbral generado por un movimiento. Message es una foto del texto al
// momento de crearse; solo IsRead cambia después.
type Alert struct {
	ID        int64
	ProductID int64
	Type      string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// AlertDetail alerta con datos actuales del producto (para listados).
type AlertDetail struct {
	Alert
	ProductName  string
	ProductCode  string
	CurrentStock int64
}
