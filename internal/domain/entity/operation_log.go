package entity

import "time"

// Módulos registrados en el log de operaciones.
const (
	ModuleAuth     = "auth"
	ModuleProducts = "productos"
	ModuleStock    = "inventario"
	ModuleAlerts   = "alertas"
	ModuleSystem   = "sistema"
)

// OperationLog entrada del log de auditoría.
type OperationLog struct {
	ID        int64
	UserID    int64
	UserEmail string
	Action    string
	Module    string
	Details   string
	IPAddress string
	CreatedAt time.Time

	UserName string // solo lectura (join con users)
}
