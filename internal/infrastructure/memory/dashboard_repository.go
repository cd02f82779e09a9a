package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DashboardRepository implementa repository.DashboardRepository en memoria.
type DashboardRepository struct{ v view }

func (r *DashboardRepository) Counts(_ context.Context, dayStart, dayEnd time.Time) (*repository.DashboardCounts, error) {
	out := &repository.DashboardCounts{}
	err := r.v.read(func(st *state) error {
		out.TotalProducts = int64(len(st.products))
		for _, p := range st.products {
			if p.CurrentStock < p.MinStock {
				out.LowStockCount++
			}
			if p.CurrentStock > p.MaxStock {
				out.HighStockCount++
			}
		}
		for _, m := range st.movements {
			if m.CreatedAt.Before(dayStart) || !m.CreatedAt.Before(dayEnd) {
				continue
			}
			if m.Type == entity.MovementTypeIn {
				out.TodayIn += m.Quantity
			} else {
				out.TodayOut += m.Quantity
			}
		}
		out.UnreadAlerts = countUnread(st)
		return nil
	})
	return out, err
}

func (r *DashboardRepository) LowStockProducts(_ context.Context, limit int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if p.CurrentStock < p.MinStock {
				cp := *p
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].MinStock-out[i].CurrentStock, out[j].MinStock-out[j].CurrentStock
		if di != dj {
			return di > dj
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *DashboardRepository) DailyMovements(_ context.Context, since time.Time) ([]repository.DailyMovement, error) {
	byDate := map[string]*repository.DailyMovement{}
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if m.CreatedAt.Before(since) {
				continue
			}
			key := m.CreatedAt.Local().Format("2006-01-02")
			d, ok := byDate[key]
			if !ok {
				d = &repository.DailyMovement{Date: key}
				byDate[key] = d
			}
			if m.Type == entity.MovementTypeIn {
				d.TotalIn += m.Quantity
			} else {
				d.TotalOut += m.Quantity
			}
		}
		return nil
	})
	out := make([]repository.DailyMovement, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, err
}

func (r *DashboardRepository) CategoryStats(_ context.Context) ([]repository.CategoryStat, error) {
	byCat := map[string]*repository.CategoryStat{}
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			cat := p.Category
			if cat == "" {
				cat = repository.UncategorizedCategory
			}
			c, ok := byCat[cat]
			if !ok {
				c = &repository.CategoryStat{Category: cat, StockValue: decimal.Zero}
				byCat[cat] = c
			}
			c.ProductCount++
			c.TotalStock += p.CurrentStock
			c.StockValue = c.StockValue.Add(p.UnitPrice.Mul(decimal.NewFromInt(p.CurrentStock)))
		}
		return nil
	})
	out := make([]repository.CategoryStat, 0, len(byCat))
	for _, c := range byCat {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductCount != out[j].ProductCount {
			return out[i].ProductCount > out[j].ProductCount
		}
		return out[i].Category < out[j].Category
	})
	return out, err
}
