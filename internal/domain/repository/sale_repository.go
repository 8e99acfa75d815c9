package repository

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas con sus líneas.
type SaleRepository interface {
	// Create persiste cabecera y líneas de forma atómica.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, locationID string, limit, offset int) ([]*entity.Sale, error)
	Delete(ctx context.Context, id string) error
}
