package inventory

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacenamiento, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el libro de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
