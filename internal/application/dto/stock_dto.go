package dto

import "time"

// StockInRequest body para POST /api/stock/in.
type StockInRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Supplier  string `json:"supplier,omitempty"`
	BatchNo   string `json:"batch_no,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// StockOutRequest body para POST /api/stock/out.
type StockOutRequest struct {
	ProductID  int64  `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	Department string `json:"department,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// StockAdjustRequest body para POST /api/stock/adjust. ActualStock es puntero para
// distinguir "0" de "no enviado".
type StockAdjustRequest struct {
	ProductID   int64  `json:"product_id"`
	ActualStock *int64 `json:"actual_stock"`
	Reason      string `json:"reason"`
}

// MovementResponse entrada del ledger.
type MovementResponse struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductCode  string    `json:"product_code,omitempty"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	BeforeStock  int64     `json:"before_stock"`
	AfterStock   int64     `json:"after_stock"`
	OperatorID   int64     `json:"operator_id"`
	OperatorName string    `json:"operator_name,omitempty"`
	Supplier     string    `json:"supplier,omitempty"`
	Department   string    `json:"department,omitempty"`
	BatchNo      string    `json:"batch_no,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementEnvelope salida de entrada/salida de stock (201).
type MovementEnvelope struct {
	Message  string            `json:"message"`
	Movement *MovementResponse `json:"movement"`
}

// AdjustmentResponse detalle de un ajuste aplicado.
type AdjustmentResponse struct {
	ProductID   int64             `json:"product_id"`
	BeforeStock int64             `json:"before_stock"`
	AfterStock  int64             `json:"after_stock"`
	Difference  int64             `json:"difference"`
	Reason      string            `json:"reason"`
	Movement    *MovementResponse `json:"movement"`
}

// AdjustResult resultado del ajuste. Adjusted=false cuando el stock real coincide (sin escritura).
type AdjustResult struct {
	Adjusted   bool
	Adjustment *AdjustmentResponse
}

// AdjustEnvelope salida de POST /api/stock/adjust.
type AdjustEnvelope struct {
	Message    string              `json:"message"`
	Adjusted   *bool               `json:"adjusted,omitempty"`
	Adjustment *AdjustmentResponse `json:"adjustment,omitempty"`
}

// MovementListRequest filtros de GET /api/stock/movements.
type MovementListRequest struct {
	ProductID int64  `query:"product_id"`
	Type      string `query:"type"`
	StartDate string `query:"start_date"` // YYYY-MM-DD o RFC3339
	EndDate   string `query:"end_date"`
	Limit     int    `query:"limit"`
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// LedgerCheckResponse compara el contador cacheado con la suma del ledger.
type LedgerCheckResponse struct {
	ProductID    int64 `json:"product_id"`
	CurrentStock int64 `json:"current_stock"`
	LedgerSum    int64 `json:"ledger_sum"`
	Consistent   bool  `json:"consistent"`
}
