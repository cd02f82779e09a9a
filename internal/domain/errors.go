package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrDuplicate          = &conflictError{msg: "recurso duplicado"}
	ErrEmailAlreadyExists = &conflictError{msg: "el email ya está registrado"}
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStorage            = errors.New("error de almacenamiento")
)

// conflictError es una variante de ErrConflict con mensaje propio:
// errors.Is(ErrDuplicate, ErrConflict) es true.
type conflictError struct {
	msg string
}

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Is(target error) bool { return target == ErrConflict }

// StorageError envuelve un fallo del almacén subyacente (pool, tx, SQL).
// errors.Is(err, ErrStorage) es true para cualquier StorageError.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
