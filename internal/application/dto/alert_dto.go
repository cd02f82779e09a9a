package dto

import "time"

// AlertResponse alerta con datos actuales del producto.
type AlertResponse struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductCode  string    `json:"product_code"`
	CurrentStock int64     `json:"current_stock"`
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// AlertListResponse lista de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Total int             `json:"total"`
}

// UnreadCountResponse salida de GET /api/alerts/unread-count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
