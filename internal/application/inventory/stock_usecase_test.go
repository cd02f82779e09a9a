package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOperatorID int64 = 1

func newEngine(t *testing.T) (*inventory.StockUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return inventory.NewStockUseCase(store, store.Products(), store.Movements()), store
}

func seedProduct(t *testing.T, store *memory.Store, code string, min, max int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{Code: code, Name: "Producto " + code, MinStock: min, MaxStock: max, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func currentStock(t *testing.T, store *memory.Store, id int64) int64 {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func alertsFor(t *testing.T, store *memory.Store, id int64) []*entity.AlertDetail {
	t.Helper()
	all, err := store.Alerts().List(context.Background(), nil, 0)
	require.NoError(t, err)
	out := make([]*entity.AlertDetail, 0)
	for _, a := range all {
		if a.ProductID == id {
			out = append(out, a)
		}
	}
	return out
}

func ledgerSum(t *testing.T, store *memory.Store, id int64) int64 {
	t.Helper()
	sum, err := store.Movements().SumByProduct(context.Background(), id)
	require.NoError(t, err)
	return sum
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestStockUseCase_EscenarioP001(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "P001", 10, 1000)

	mov, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mov.BeforeStock)
	assert.Equal(t, int64(5), mov.AfterStock)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, int64(5), currentStock(t, store, p.ID))
	alerts := alertsFor(t, store, p.ID)
	require.Len(t, alerts, 1, "5 < 10 debe generar alerta de stock bajo")
	assert.Equal(t, entity.AlertTypeLowStock, alerts[0].Type)

	_, err = uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), currentStock(t, store, p.ID))
	assert.Len(t, alertsFor(t, store, p.ID), 1, "15 está en rango: sin alerta nueva")

	_, err = uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: p.ID, Quantity: 20})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(15), currentStock(t, store, p.ID))

	mov, err = uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: p.ID, Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mov.AfterStock)
	assert.Equal(t, int64(0), currentStock(t, store, p.ID))
	alerts = alertsFor(t, store, p.ID)
	require.Len(t, alerts, 2, "las alertas no se deduplican")
	assert.Equal(t, entity.AlertTypeLowStock, alerts[0].Type)

	assert.Equal(t, int64(0), ledgerSum(t, store, p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive / Issue
// ──────────────────────────────────────────────────────────────────────────────

func TestStockUseCase_LedgerCoincideConContador(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "L1", 0, 999999)

	ops := []int64{10, -3, 7, -14, 25, -1}
	for _, q := range ops {
		var err error
		if q > 0 {
			_, err = uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: q})
		} else {
			_, err = uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: p.ID, Quantity: -q})
		}
		require.NoError(t, err)
	}
	assert.Equal(t, int64(24), currentStock(t, store, p.ID))
	assert.Equal(t, currentStock(t, store, p.ID), ledgerSum(t, store, p.ID))
}

func TestStockUseCase_EntradaInvalida(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "X1", 0, 100)

	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: -4})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: 0, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, int64(0), ledgerSum(t, store, p.ID))
}

func TestStockUseCase_ProductoInexistente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newEngine(t)

	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: 99, ActualStock: 1, Reason: "conteo"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUseCase_StockInsuficienteNoEscribe(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "S1", 0, 100)
	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: p.ID, Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1, "la salida rechazada no agrega movimiento")
	assert.Equal(t, int64(3), currentStock(t, store, p.ID))
}

func TestStockUseCase_AlertaExceso(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "H1", 0, 10)

	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 11, Supplier: " ACME "})
	require.NoError(t, err)
	alerts := alertsFor(t, store, p.ID)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeHighStock, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "máximo 10")

	list, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ACME", list[0].Supplier)
	assert.Equal(t, testOperatorID, list[0].OperatorID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestStockUseCase_AjusteSinDiferencia(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "A0", 0, 100)
	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 8})
	require.NoError(t, err)

	res, err := uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: p.ID, ActualStock: 8, Reason: "conteo mensual"})
	require.NoError(t, err)
	assert.False(t, res.Adjusted)
	assert.Nil(t, res.Adjustment)

	list, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1, "un ajuste sin diferencia no escribe movimiento")
}

func TestStockUseCase_AjusteHaciaAbajoYArriba(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "A1", 0, 100)
	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 20})
	require.NoError(t, err)

	res, err := uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: p.ID, ActualStock: 12, Reason: "merma"})
	require.NoError(t, err)
	require.True(t, res.Adjusted)
	assert.Equal(t, int64(20), res.Adjustment.BeforeStock)
	assert.Equal(t, int64(12), res.Adjustment.AfterStock)
	assert.Equal(t, int64(-8), res.Adjustment.Difference)
	assert.Equal(t, "merma", res.Adjustment.Reason)
	require.NotNil(t, res.Adjustment.Movement)
	assert.Equal(t, entity.MovementTypeOut, res.Adjustment.Movement.Type)
	assert.Equal(t, int64(8), res.Adjustment.Movement.Quantity)
	assert.Equal(t, inventory.AdjustReasonPrefix+"merma", res.Adjustment.Movement.Reason)

	res, err = uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: p.ID, ActualStock: 30, Reason: "hallazgo"})
	require.NoError(t, err)
	require.True(t, res.Adjusted)
	assert.Equal(t, entity.MovementTypeIn, res.Adjustment.Movement.Type)
	assert.Equal(t, int64(18), res.Adjustment.Movement.Quantity)

	assert.Equal(t, int64(30), currentStock(t, store, p.ID))
	assert.Equal(t, int64(30), ledgerSum(t, store, p.ID))
}

func TestStockUseCase_AjusteValidaciones(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "A2", 0, 100)

	_, err := uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: p.ID, ActualStock: 5, Reason: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo vacío es inválido")
	_, err = uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: p.ID, ActualStock: -1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockUseCase_AjusteAceroGeneraAlerta(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "A3", 5, 100)
	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 10})
	require.NoError(t, err)

	_, err = uc.Adjust(ctx, testOperatorID, inventory.AdjustInput{ProductID: p.ID, ActualStock: 0, Reason: "robo"})
	require.NoError(t, err)
	alerts := alertsFor(t, store, p.ID)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeLowStock, alerts[0].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// failingMovements falla al insertar el movimiento, después de actualizar el stock.
type failingMovements struct {
	repository.StockMovementRepository
}

func (failingMovements) Create(context.Context, *entity.StockMovement) error {
	return domain.NewStorageError("insert stock_movement", errors.New("disco lleno"))
}

// failingTxRunner reemplaza el repositorio de movimientos de la tx por uno que falla.
type failingTxRunner struct {
	store *memory.Store
}

func (r failingTxRunner) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.AlertRepository,
) error) error {
	return r.store.Run(ctx, func(p repository.ProductRepository, m repository.StockMovementRepository, a repository.AlertRepository) error {
		return fn(p, failingMovements{m}, a)
	})
}

func TestStockUseCase_FalloDeAlmacenamientoHaceRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, "R1", 10, 100)
	uc := inventory.NewStockUseCase(failingTxRunner{store: store}, store.Products(), store.Movements())

	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)

	assert.Equal(t, int64(0), currentStock(t, store, p.ID), "el contador no debe cambiar si el ledger falla")
	assert.Equal(t, int64(0), ledgerSum(t, store, p.ID))
	assert.Empty(t, alertsFor(t, store, p.ID))
}

func TestStockUseCase_EntradasConcurrentesNoPierdenActualizaciones(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "C1", 0, 999999)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*2), currentStock(t, store, p.ID))
	assert.Equal(t, int64(workers*2), ledgerSum(t, store, p.ID))
}

func TestStockUseCase_SalidasConcurrentesNuncaNegativas(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "C2", 0, 999999)
	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 10})
	require.NoError(t, err)

	const workers = 30
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Issue(ctx, testOperatorID, inventory.IssueInput{ProductID: p.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, workers-10, rejected)
	assert.Equal(t, int64(0), currentStock(t, store, p.ID))
	assert.Equal(t, int64(0), ledgerSum(t, store, p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// LedgerCheck
// ──────────────────────────────────────────────────────────────────────────────

func TestStockUseCase_LedgerCheck(t *testing.T) {
	ctx := context.Background()
	uc, store := newEngine(t)
	p := seedProduct(t, store, "LC", 0, 100)
	_, err := uc.Receive(ctx, testOperatorID, inventory.ReceiveInput{ProductID: p.ID, Quantity: 9})
	require.NoError(t, err)

	res, err := uc.LedgerCheck(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	assert.Equal(t, int64(9), res.LedgerSum)

	_, err = uc.LedgerCheck(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
