package dto

import "time"

// LogListRequest filtros de GET /api/logs.
type LogListRequest struct {
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
	Module    string `query:"module"`
	UserID    int64  `query:"user_id"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// OperationLogResponse entrada del log de operaciones.
type OperationLogResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name,omitempty"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// LogListResponse página del log.
type LogListResponse struct {
	Logs     []OperationLogResponse `json:"logs"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// CountItem par clave → cantidad.
type CountItem struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// LogStatsResponse agregados del log en los últimos Days días.
type LogStatsResponse struct {
	Days     int         `json:"days"`
	ByModule []CountItem `json:"by_module"`
	ByAction []CountItem `json:"by_action"`
	ByUser   []CountItem `json:"by_user"`
	ByDate   []CountItem `json:"by_date"`
}
