package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func TestProductUseCase_CreateConValoresPorDefecto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: " P001 ", Name: "Tornillo"})
	require.NoError(t, err)
	assert.Equal(t, "P001", p.Code)
	assert.Equal(t, entity.DefaultMinStock, p.MinStock)
	assert.Equal(t, entity.DefaultMaxStock, p.MaxStock)
	assert.Equal(t, int64(0), p.CurrentStock)
	assert.True(t, p.UnitPrice.IsZero())
	assert.NotZero(t, p.ID)
}

func TestProductUseCase_CreateValidaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "A", Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "A", Name: "X", MinStock: ptr(int64(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "A", Name: "X", UnitPrice: ptr(decimal.NewFromInt(-5))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_CreateCodigoDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "DUP", Name: "Uno"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "DUP", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Code: "U1", Name: "Original", Category: "Ferretería"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin campos reconocidos")

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:      ptr("Renombrado"),
		MinStock:  ptr(int64(3)),
		UnitPrice: ptr(decimal.RequireFromString("12.50")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", updated.Name)
	assert.Equal(t, "Ferretería", updated.Category, "campos no enviados se conservan")
	assert.Equal(t, int64(3), updated.MinStock)
	assert.True(t, decimal.RequireFromString("12.5").Equal(updated.UnitPrice))

	_, err = uc.Update(ctx, 999, dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_UpdateRenombrarACodigoAjeno(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateProductRequest{Code: "A", Name: "A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "B", Name: "B"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{Code: ptr("B")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	same, err := uc.Update(ctx, a.ID, dto.UpdateProductRequest{Code: ptr("A")})
	require.NoError(t, err, "conservar el propio código no es conflicto")
	assert.Equal(t, "A", same.Code)
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	engine := inventory.NewStockUseCase(store, store.Products(), store.Movements())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: "S", Name: "Stock"})
	require.NoError(t, err)
	_, err = engine.Receive(ctx, 1, inventory.ReceiveInput{ProductID: p.ID, Quantity: 7})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Stock 2")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.CurrentStock)
}

func TestProductUseCase_SearchYList(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	for _, in := range []dto.CreateProductRequest{
		{Code: "TOR-1", Name: "Tornillo", Category: "Ferretería"},
		{Code: "CLV-1", Name: "Clavo", Category: "ferretería"},
		{Code: "PAP-1", Name: "Papel", Category: "Oficina"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	res, err := uc.Search(ctx, "FERRE")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = uc.Search(ctx, "pap")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "PAP-1", res.Items[0].Code)

	_, err = uc.Search(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_DeleteEnCascada(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	engine := inventory.NewStockUseCase(store, store.Products(), store.Movements())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: "DEL", Name: "Borrar", MinStock: ptr(int64(10))})
	require.NoError(t, err)
	_, err = engine.Receive(ctx, 1, inventory.ReceiveInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))

	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	movs, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, movs)
	alerts, err := store.Alerts().List(ctx, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}
