package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Errores del libro de inventario (traslados y reversiones).
var (
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidTransfer   = errors.New("el origen y el destino deben ser distintos")
	ErrSourceNotFound    = errors.New("no existe inventario del producto en la ubicación de origen")
	ErrMovementNotFound  = errors.New("movimiento no encontrado")
	ErrInconsistentState = errors.New("inventario inconsistente con el movimiento")
	ErrStorage           = errors.New("error de almacenamiento")
)

// StorageError envuelve una falla del almacenamiento (conexión, commit, conflicto de la BD).
// errors.Is(err, ErrStorage) es verdadero para cualquier StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
