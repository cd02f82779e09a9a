package entity

import "time"

// Tipos de movimiento en el ledger. Un ajuste se registra como in/out según el signo.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement es una entrada inmutable del ledger de inventario.
// AfterStock = BeforeStock ± Quantity según Type; Quantity siempre positiva.
type StockMovement struct {
	ID          int64
	ProductID   int64
	Type        string
	Quantity    int64
	BeforeStock int64
	AfterStock  int64
	OperatorID  int64
	Supplier    string
	Department  string
	BatchNo     string
	Reason      string
	CreatedAt   time.Time
}

// Signed devuelve la cantidad con signo (+ entrada, − salida).
func (m *StockMovement) Signed() int64 {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}

// StockMovementDetail movimiento enriquecido para listados (join con producto y operador).
type StockMovementDetail struct {
	StockMovement
	ProductName  string
	ProductCode  string
	OperatorName string
}
