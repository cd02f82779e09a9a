package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure ProductRepo implements repository.ProductRepository.
var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, COALESCE(category, ''), COALESCE(unit, ''),
	min_stock, max_stock, current_stock, unit_price, COALESCE(image_url, ''), created_at, updated_at`

// ProductRepo implementación PostgreSQL del repositorio de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el repositorio; q puede ser el pool o una tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta un producto y asigna su ID. Código duplicado: domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (code, name, category, unit, min_stock, max_stock, current_stock,
		unit_price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Code, p.Name, nullIfEmpty(p.Category), nullIfEmpty(p.Unit), p.MinStock, p.MaxStock,
		p.CurrentStock, p.UnitPrice, nullIfEmpty(p.ImageURL), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("create product", err)
	}
	return nil
}

// GetByID devuelve el producto o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// Update actualiza los datos maestros; current_stock solo cambia vía UpdateStock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `UPDATE products SET code = $2, name = $3, category = $4, unit = $5, min_stock = $6,
		max_stock = $7, unit_price = $8, image_url = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, nullIfEmpty(p.Category), nullIfEmpty(p.Unit), p.MinStock,
		p.MaxStock, p.UnitPrice, nullIfEmpty(p.ImageURL), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id, stock int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return storageErr("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.getMany(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
}

// Search busca por coincidencia parcial (sin distinguir mayúsculas) en código, nombre o categoría.
func (r *ProductRepo) Search(ctx context.Context, keyword string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE code ILIKE $1 OR name ILIKE $1 OR COALESCE(category, '') ILIKE $1
		ORDER BY created_at DESC, id DESC`
	return r.getMany(ctx, query, likePattern(keyword))
}

// Delete elimina el producto; movimientos y alertas caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) getMany(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	defer rows.Close()

	out := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr("scan product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list products", err)
	}
	return out, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Unit,
		&p.MinStock, &p.MaxStock, &p.CurrentStock, &p.UnitPrice, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
