package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse KPIs del tablero (recalculados en vivo o desde caché de corta vida).
type DashboardStatsResponse struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	HighStockCount int64 `json:"high_stock_count"`
	TodayIn        int64 `json:"today_in"`
	TodayOut       int64 `json:"today_out"`
	UnreadAlerts   int64 `json:"unread_alerts"`
}

// LowStockProductResponse producto bajo mínimo con su déficit.
type LowStockProductResponse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	MinStock     int64  `json:"min_stock"`
	CurrentStock int64  `json:"current_stock"`
	Shortage     int64  `json:"shortage"` // min_stock - current_stock
}

// StockTrendPoint totales de un día (YYYY-MM-DD).
type StockTrendPoint struct {
	Date     string `json:"date"`
	TotalIn  int64  `json:"total_in"`
	TotalOut int64  `json:"total_out"`
}

// CategoryStatResponse agregado por categoría.
type CategoryStatResponse struct {
	Category     string          `json:"category"`
	ProductCount int64           `json:"product_count"`
	TotalStock   int64           `json:"total_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
}
