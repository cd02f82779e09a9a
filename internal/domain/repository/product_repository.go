package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update persiste los atributos del catálogo. No modifica CurrentStock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock es la única escritura de current_stock (motor de inventario).
	UpdateStock(ctx context.Context, id, stock int64) error
	List(ctx context.Context) ([]*entity.Product, error)
	Search(ctx context.Context, keyword string) ([]*entity.Product, error)
	// Delete elimina el producto y en cascada sus movimientos y alertas. ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
