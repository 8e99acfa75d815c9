package repository

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// InventoryFilter filtros opcionales para listar registros de inventario.
type InventoryFilter struct {
	ProductID  string
	LocationID string
}

// InventoryRepository define el puerto para los registros de inventario por (producto, ubicación).
// Los métodos *ForUpdate bloquean la fila hasta el fin de la transacción en la que se usan.
// Los lectores devuelven (nil, nil) cuando el registro no existe.
type InventoryRepository interface {
	Create(ctx context.Context, record *entity.InventoryRecord) error
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	Get(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error)
	List(ctx context.Context, filter InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error)
	ListNegative(ctx context.Context) ([]*entity.InventoryRecord, error)
	Delete(ctx context.Context, id string) error

	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error)
	// GetOrCreateForUpdate crea el registro con cantidad 0 si no existe y lo bloquea.
	GetOrCreateForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
}
