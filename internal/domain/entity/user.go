package entity

import "time"

// Roles conocidos. El conjunto es abierto: la BD acepta cualquier texto.
const (
	RoleUser             = "user"
	RoleAdmin            = "admin"
	RoleWarehouseManager = "warehouse_manager"
)

// User representa una identidad del sistema.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	CreatedAt    time.Time
}
