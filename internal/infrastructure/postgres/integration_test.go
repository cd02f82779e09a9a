//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// setupTestDB levanta un PostgreSQL en contenedor, aplica el esquema y devuelve el pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("almacen_test"),
		tcpostgres.WithUsername("almacen"),
		tcpostgres.WithPassword("almacen"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor PostgreSQL")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("no se pudo terminar el contenedor: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: connStr, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.ApplySchema(ctx, pool))
	// Idempotente: aplicar dos veces no falla.
	require.NoError(t, postgres.ApplySchema(ctx, pool))
	return pool
}

func seedProduct(t *testing.T, repo *postgres.ProductRepo, code string, minStock, maxStock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		Code: code, Name: "Producto " + code, Category: "Ferretería", Unit: "unidad",
		MinStock: minStock, MaxStock: maxStock, UnitPrice: decimal.RequireFromString("12.50"),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegration_Productos_CRUDYBusqueda(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)

	p := seedProduct(t, repo, "P001", 5, 100)

	dup := &entity.Product{Code: "P001", Name: "Otro", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrConflict)

	got, err := repo.GetByCode(ctx, "P001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.UnitPrice))

	missing, err := repo.GetByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	found, err := repo.Search(ctx, "ferre")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	// Los comodines del usuario se buscan literalmente.
	found, err = repo.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestIntegration_Usuarios_EmailUnico(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	u := &entity.User{Email: "Ana@Example.com", PasswordHash: "hash", Name: "Ana", Role: entity.RoleUser, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, u))

	dup := &entity.User{Email: "ana@example.com", PasswordHash: "hash", Role: entity.RoleUser, CreatedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, repo.UpdateRole(ctx, u.ID, entity.RoleAdmin))
	assert.ErrorIs(t, repo.UpdateRole(ctx, 999999, entity.RoleAdmin), domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Motor de inventario sobre PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegration_Stock_EntradasSalidasYAlertas(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	productRepo := postgres.NewProductRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool), productRepo, movRepo)

	p := seedProduct(t, productRepo, "P001", 10, 100)

	_, err := uc.Receive(ctx, 1, inventory.ReceiveInput{ProductID: p.ID, Quantity: 50, Supplier: "Proveedor A"})
	require.NoError(t, err)
	mov, err := uc.Issue(ctx, 1, inventory.IssueInput{ProductID: p.ID, Quantity: 45, Department: "Taller"})
	require.NoError(t, err)
	assert.Equal(t, int64(50), mov.BeforeStock)
	assert.Equal(t, int64(5), mov.AfterStock)

	_, err = uc.Issue(ctx, 1, inventory.IssueInput{ProductID: p.ID, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	alerts, err := alertRepo.List(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeLowStock, alerts[0].Type)
	assert.Equal(t, "P001", alerts[0].ProductCode)

	check, err := uc.LedgerCheck(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
	assert.Equal(t, int64(5), check.CurrentStock)

	movs, err := movRepo.List(ctx, repository.MovementFilter{ProductID: p.ID, Type: entity.MovementTypeOut})
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	// El borrado del producto arrastra movimientos y alertas.
	require.NoError(t, productRepo.Delete(ctx, p.ID))
	n, err := alertRepo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_Stock_SalidasConcurrentesNuncaNegativas(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	productRepo := postgres.NewProductRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool), productRepo, movRepo)

	p := seedProduct(t, productRepo, "P002", 0, 1000)
	_, err := uc.Receive(ctx, 1, inventory.ReceiveInput{ProductID: p.ID, Quantity: 20})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Issue(ctx, 1, inventory.IssueInput{ProductID: p.ID, Quantity: 1}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, ok, "solo 20 salidas caben en el stock disponible")
	got, err := productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStock)

	check, err := uc.LedgerCheck(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablero y auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegration_Dashboard_Agregados(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	productRepo := postgres.NewProductRepository(pool)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool), productRepo, postgres.NewStockMovementRepository(pool))
	dash := postgres.NewDashboardRepository(pool)

	a := seedProduct(t, productRepo, "A1", 10, 100)
	seedProduct(t, productRepo, "A2", 0, 100)
	_, err := uc.Receive(ctx, 1, inventory.ReceiveInput{ProductID: a.ID, Quantity: 4})
	require.NoError(t, err)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counts, err := dash.Counts(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.TotalProducts)
	assert.Equal(t, int64(1), counts.LowStockCount)
	assert.Equal(t, int64(4), counts.TodayIn)
	assert.Equal(t, int64(1), counts.UnreadAlerts)

	low, err := dash.LowStockProducts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "A1", low[0].Code)

	daily, err := dash.DailyMovements(ctx, dayStart)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, dayStart.Format("2006-01-02"), daily[0].Date)

	cats, err := dash.CategoryStats(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(2), cats[0].ProductCount)
	assert.True(t, decimal.RequireFromString("50").Equal(cats[0].StockValue))
}

func TestIntegration_Logs_ListaEstadisticasYLimpieza(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := postgres.NewOperationLogRepository(pool)

	old := &entity.OperationLog{Action: "login", Module: entity.ModuleAuth, UserEmail: "a@x.com", CreatedAt: time.Now().AddDate(0, 0, -40)}
	require.NoError(t, repo.Create(ctx, old))
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.OperationLog{
			Action: "crear producto", Module: entity.ModuleProducts, UserEmail: "b@x.com", CreatedAt: time.Now(),
		}))
	}

	logs, total, err := repo.List(ctx, repository.LogFilter{Module: entity.ModuleProducts, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 2)

	stats, err := repo.Stats(ctx, time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, stats.ByModule, 1)
	assert.Equal(t, int64(3), stats.ByModule[0].Count)
	require.Len(t, stats.ByUser, 1)
	assert.Equal(t, "b@x.com", stats.ByUser[0].Key)

	n, err := repo.DeleteOlderThan(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
