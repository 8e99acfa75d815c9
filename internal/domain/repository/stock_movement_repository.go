package repository

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// MovementFilter filtros opcionales; LocationID coincide con origen o destino.
type MovementFilter struct {
	ProductID  string
	LocationID string
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Los movimientos no se actualizan: solo se crean y se eliminan.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// GetForUpdate bloquea el movimiento para que dos reversiones concurrentes se serialicen.
	GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
}
