package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AlertRepository implementa repository.AlertRepository en memoria.
type AlertRepository struct{ v view }

func (r *AlertRepository) Create(_ context.Context, a *entity.Alert) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[a.ProductID]; !ok {
			return domain.ErrNotFound
		}
		a.ID = st.next("alerts")
		cp := *a
		st.alerts = append(st.alerts, &cp)
		return nil
	})
}

func (r *AlertRepository) List(_ context.Context, isRead *bool, limit int) ([]*entity.AlertDetail, error) {
	out := make([]*entity.AlertDetail, 0)
	err := r.v.read(func(st *state) error {
		for _, a := range st.alerts {
			if isRead != nil && a.IsRead != *isRead {
				continue
			}
			d := &entity.AlertDetail{Alert: *a}
			if p, ok := st.products[a.ProductID]; ok {
				d.ProductName, d.ProductCode, d.CurrentStock = p.Name, p.Code, p.CurrentStock
			}
			out = append(out, d)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *AlertRepository) CountUnread(_ context.Context) (int64, error) {
	var n int64
	err := r.v.read(func(st *state) error {
		n = countUnread(st)
		return nil
	})
	return n, err
}

func (r *AlertRepository) MarkRead(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		for _, a := range st.alerts {
			if a.ID == id {
				a.IsRead = true
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *AlertRepository) MarkAllRead(_ context.Context) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		for _, a := range st.alerts {
			if !a.IsRead {
				a.IsRead = true
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AlertRepository) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		for i, a := range st.alerts {
			if a.ID == id {
				st.alerts = append(st.alerts[:i], st.alerts[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *AlertRepository) DeleteRead(_ context.Context) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		kept := st.alerts[:0]
		for _, a := range st.alerts {
			if a.IsRead {
				n++
				continue
			}
			kept = append(kept, a)
		}
		st.alerts = kept
		return nil
	})
	return n, err
}

func countUnread(st *state) int64 {
	var n int64
	for _, a := range st.alerts {
		if !a.IsRead {
			n++
		}
	}
	return n
}
