package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockMovementRepository implementa repository.StockMovementRepository (append-only).
type StockMovementRepository struct{ v view }

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return domain.ErrNotFound
		}
		m.ID = st.next("stock_movements")
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *StockMovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	out := make([]*entity.StockMovementDetail, 0)
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if f.ProductID > 0 && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			d := &entity.StockMovementDetail{StockMovement: *m}
			if p, ok := st.products[m.ProductID]; ok {
				d.ProductName, d.ProductCode = p.Name, p.Code
			}
			if u, ok := st.users[m.OperatorID]; ok {
				d.OperatorName = u.Name
			}
			out = append(out, d)
		}
		return nil
	})
	sortMovementsDesc(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, err
}

func (r *StockMovementRepository) SumByProduct(_ context.Context, productID int64) (int64, error) {
	var sum int64
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				sum += m.Signed()
			}
		}
		return nil
	})
	return sum, err
}

func sortMovementsDesc(list []*entity.StockMovementDetail) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
