package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct{ v view }

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if codeTaken(st, p.Code, 0) {
			return domain.ErrDuplicate
		}
		p.ID = st.next("products")
		cp := *p
		st.products[p.ID] = &cp
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate: el acceso exclusivo lo da la transacción del Store.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if p.Code == code {
				cp := *p
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if codeTaken(st, p.Code, p.ID) {
			return domain.ErrDuplicate
		}
		cp := *p
		cp.CurrentStock = cur.CurrentStock
		cp.CreatedAt = cur.CreatedAt
		st.products[p.ID] = &cp
		return nil
	})
}

func (r *ProductRepository) UpdateStock(_ context.Context, id, stock int64) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.CurrentStock = stock
		return nil
	})
}

func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true })
}

func (r *ProductRepository) Search(_ context.Context, keyword string) ([]*entity.Product, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	return r.filter(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Code), kw) ||
			strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Category), kw)
	})
}

// Delete elimina el producto con sus movimientos y alertas (cascada).
func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		movs := st.movements[:0]
		for _, m := range st.movements {
			if m.ProductID != id {
				movs = append(movs, m)
			}
		}
		st.movements = movs
		alerts := st.alerts[:0]
		for _, a := range st.alerts {
			if a.ProductID != id {
				alerts = append(alerts, a)
			}
		}
		st.alerts = alerts
		return nil
	})
}

func (r *ProductRepository) filter(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if keep(p) {
				cp := *p
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func codeTaken(st *state, code string, exceptID int64) bool {
	for id, p := range st.products {
		if id != exceptID && p.Code == code {
			return true
		}
	}
	return false
}
