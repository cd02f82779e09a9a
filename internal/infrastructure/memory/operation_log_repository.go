package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// OperationLogRepository implementa repository.OperationLogRepository en memoria.
type OperationLogRepository struct{ v view }

func (r *OperationLogRepository) Create(_ context.Context, e *entity.OperationLog) error {
	return r.v.write(func(st *state) error {
		e.ID = st.next("operation_logs")
		cp := *e
		st.logs = append(st.logs, &cp)
		return nil
	})
}

func (r *OperationLogRepository) List(_ context.Context, f repository.LogFilter) ([]*entity.OperationLog, int64, error) {
	matched := make([]*entity.OperationLog, 0)
	err := r.v.read(func(st *state) error {
		for _, l := range st.logs {
			if f.Module != "" && l.Module != f.Module {
				continue
			}
			if f.UserID > 0 && l.UserID != f.UserID {
				continue
			}
			if f.From != nil && l.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && l.CreatedAt.After(*f.To) {
				continue
			}
			cp := *l
			if u, ok := st.users[l.UserID]; ok {
				cp.UserName = u.Name
			}
			matched = append(matched, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := int64(len(matched))
	start := f.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return matched[start:end], total, nil
}

func (r *OperationLogRepository) Stats(_ context.Context, since time.Time) (*repository.LogStats, error) {
	byModule := map[string]int64{}
	byAction := map[string]int64{}
	byUser := map[string]int64{}
	byDate := map[string]int64{}
	err := r.v.read(func(st *state) error {
		for _, l := range st.logs {
			if l.CreatedAt.Before(since) {
				continue
			}
			byModule[l.Module]++
			byAction[l.Action]++
			if l.UserEmail != "" {
				byUser[l.UserEmail]++
			}
			byDate[l.CreatedAt.Local().Format("2006-01-02")]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	dates := make([]repository.CountByKey, 0, len(byDate))
	for d, c := range byDate {
		dates = append(dates, repository.CountByKey{Key: d, Count: c})
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Key < dates[j].Key })
	return &repository.LogStats{
		ByModule: sortCounts(byModule, 0),
		ByAction: sortCounts(byAction, 10),
		ByUser:   sortCounts(byUser, 10),
		ByDate:   dates,
	}, nil
}

func (r *OperationLogRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		kept := st.logs[:0]
		for _, l := range st.logs {
			if l.CreatedAt.Before(cutoff) {
				n++
				continue
			}
			kept = append(kept, l)
		}
		st.logs = kept
		return nil
	})
	return n, err
}
