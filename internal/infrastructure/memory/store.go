// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con DB_DRIVER=memory (desarrollo local) y en los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Store contiene todas las tablas. Las escrituras (sueltas o en transacción) se serializan
// con writeMu; las lecturas sueltas usan mu en modo compartido.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *state
}

type state struct {
	seq       map[string]int64
	products  map[int64]*entity.Product
	movements []*entity.StockMovement
	alerts    []*entity.Alert
	users     map[int64]*entity.User
	logs      []*entity.OperationLog
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: &state{
		seq:      make(map[string]int64),
		products: make(map[int64]*entity.Product),
		users:    make(map[int64]*entity.User),
	}}
}

func (st *state) next(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

// clone copia profunda usada como espacio de trabajo de una transacción.
func (st *state) clone() *state {
	out := &state{
		seq:       make(map[string]int64, len(st.seq)),
		products:  make(map[int64]*entity.Product, len(st.products)),
		movements: make([]*entity.StockMovement, 0, len(st.movements)),
		alerts:    make([]*entity.Alert, 0, len(st.alerts)),
		users:     make(map[int64]*entity.User, len(st.users)),
		logs:      make([]*entity.OperationLog, 0, len(st.logs)),
	}
	for k, v := range st.seq {
		out.seq[k] = v
	}
	for id, p := range st.products {
		cp := *p
		out.products[id] = &cp
	}
	for _, m := range st.movements {
		cp := *m
		out.movements = append(out.movements, &cp)
	}
	for _, a := range st.alerts {
		cp := *a
		out.alerts = append(out.alerts, &cp)
	}
	for id, u := range st.users {
		cp := *u
		out.users[id] = &cp
	}
	for _, l := range st.logs {
		cp := *l
		out.logs = append(out.logs, &cp)
	}
	return out
}

// view resuelve sobre qué estado opera un repositorio: el compartido o el de una transacción.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.data)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.writeMu.Lock()
	defer v.store.writeMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

// Repositorios fuera de transacción.

func (s *Store) Products() *ProductRepository { return &ProductRepository{view{store: s}} }

func (s *Store) Movements() *StockMovementRepository { return &StockMovementRepository{view{store: s}} }

func (s *Store) Alerts() *AlertRepository { return &AlertRepository{view{store: s}} }

func (s *Store) Users() *UserRepository { return &UserRepository{view{store: s}} }

func (s *Store) OperationLogs() *OperationLogRepository { return &OperationLogRepository{view{store: s}} }

func (s *Store) Dashboard() *DashboardRepository { return &DashboardRepository{view{store: s}} }

// Run ejecuta fn sobre una copia del estado con acceso exclusivo de escritura.
// Si fn devuelve error (o el contexto se canceló) la copia se descarta: equivale a Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("memory begin", err)
	}
	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	v := view{store: s, tx: work}
	if err := fn(&ProductRepository{v}, &StockMovementRepository{v}, &AlertRepository{v}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("memory commit", err)
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// Close no libera nada; existe para simetría con el pool de Postgres.
func (s *Store) Close() {}

// sortCounts ordena por cantidad desc y clave asc.
func sortCounts(m map[string]int64, limit int) []repository.CountByKey {
	out := make([]repository.CountByKey, 0, len(m))
	for k, c := range m {
		out = append(out, repository.CountByKey{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
