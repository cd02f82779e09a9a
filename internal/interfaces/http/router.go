package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockUseCase
	MovementsUC *inventory.MovementQueryUseCase
	AlertUC     *usecase.AlertUseCase
	DashboardUC *analytics.DashboardUseCase
	AuditUC     *usecase.AuditUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	api.Get("/health", Health)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.AuditUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Products
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC, deps.AuditUC, deps.DashboardUC)
	products.Get("/", productHandler.List)
	products.Get("/search/:keyword", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager), productHandler.Delete)

	// Stock
	stock := api.Group("/stock", requireAuth)
	stockHandler := NewStockHandler(deps.StockUC, deps.MovementsUC, deps.AuditUC, deps.DashboardUC)
	stock.Get("/movements", stockHandler.Movements)
	stock.Get("/movements/report", stockHandler.Report)
	stock.Get("/ledger-check/:product_id", stockHandler.LedgerCheck)
	stock.Post("/in", stockHandler.In)
	stock.Post("/out", stockHandler.Out)
	stock.Post("/adjust", stockHandler.Adjust)

	// Alerts: rutas fijas antes de las que llevan :id
	alerts := api.Group("/alerts", requireAuth)
	alertHandler := NewAlertHandler(deps.AlertUC, deps.AuditUC, deps.DashboardUC)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/unread-count", alertHandler.UnreadCount)
	alerts.Put("/mark-all-read", alertHandler.MarkAllRead)
	alerts.Put("/:id/read", alertHandler.MarkRead)
	alerts.Delete("/clear-read", alertHandler.ClearRead)
	alerts.Delete("/:id", alertHandler.Delete)

	// Dashboard
	dashboard := api.Group("/dashboard", requireAuth)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/recent-movements", dashboardHandler.RecentMovements)
	dashboard.Get("/low-stock-products", dashboardHandler.LowStockProducts)
	dashboard.Get("/stock-trend", dashboardHandler.StockTrend)
	dashboard.Get("/category-stats", dashboardHandler.CategoryStats)

	// Logs
	logs := api.Group("/logs", requireAuth)
	logHandler := NewLogHandler(deps.AuditUC)
	logs.Get("/", logHandler.List)
	logs.Get("/stats", logHandler.Stats)
	logs.Delete("/cleanup", RequireRole(entity.RoleAdmin), logHandler.Cleanup)
}
