package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// backend repositorios del driver elegido (postgres o memory).
type backend struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	alerts    repository.AlertRepository
	users     repository.UserRepository
	logs      repository.OperationLogRepository
	dashboard repository.DashboardRepository
	txRunner  inventory.TxRunner
	pool      *pgxpool.Pool // nil con el driver memory
}

func openBackend(ctx context.Context, cfg config.DBConfig) (*backend, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &backend{
			products:  store.Products(),
			movements: store.Movements(),
			alerts:    store.Alerts(),
			users:     store.Users(),
			logs:      store.OperationLogs(),
			dashboard: store.Dashboard(),
			txRunner:  store,
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		alerts:    postgres.NewAlertRepository(pool),
		users:     postgres.NewUserRepository(pool),
		logs:      postgres.NewOperationLogRepository(pool),
		dashboard: postgres.NewDashboardRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		pool:      pool,
	}, nil
}

// @title           Almacén API
// @version         1.0
// @description     API de gestión de inventario: productos, movimientos de stock, alertas y tablero.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer {token}
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	if store.pool != nil {
		defer store.pool.Close()
	}

	// Caché de KPIs: opcional. Sin Redis el tablero recalcula en cada petición.
	var statsCache ports.StatsCache
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, tablero sin caché")
		} else {
			defer rdb.Close()
			statsCache = cache.NewStatsCache(rdb, cfg.Redis.StatsTTL)
		}
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	auditUC := usecase.NewAuditUseCase(store.logs, log, cfg.Audit.RetentionDays)
	defer auditUC.Close()

	if cfg.Admin.Enabled() {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, "Administrador")
		if err != nil {
			log.Fatal().Err(err).Msg("asegurar administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	deps := httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(store.users),
		ProductUC:   usecase.NewProductUseCase(store.products),
		StockUC:     inventory.NewStockUseCase(store.txRunner, store.products, store.movements),
		MovementsUC: inventory.NewMovementQueryUseCase(store.movements, infrapdf.NewMovementReportGenerator()),
		AlertUC:     usecase.NewAlertUseCase(store.alerts),
		DashboardUC: analytics.NewDashboardUseCase(store.dashboard, store.movements, statsCache, log),
		AuditUC:     auditUC,
		JWTSecret:   cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.CORS(cfg.CORS))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Almacén API",
		}))
	}

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
