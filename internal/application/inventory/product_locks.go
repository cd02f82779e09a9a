package inventory

import "sync"

// productLocks serializa las mutaciones de stock por producto dentro del proceso.
// Cada entrada lleva un contador de referencias y se elimina al quedar libre,
// así el mapa no crece con productos inactivos.
type productLocks struct {
	mu    sync.Mutex
	locks map[int64]*productLock
}

type productLock struct {
	mu   sync.Mutex
	refs int
}

func newProductLocks() *productLocks {
	return &productLocks{locks: make(map[int64]*productLock)}
}

// lock bloquea el producto y devuelve la función que lo libera.
func (l *productLocks) lock(productID int64) (unlock func()) {
	l.mu.Lock()
	pl, ok := l.locks[productID]
	if !ok {
		pl = &productLock{}
		l.locks[productID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, productID)
		}
		l.mu.Unlock()
	}
}

// size número de productos con bloqueo activo o en espera.
func (l *productLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
