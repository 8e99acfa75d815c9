package repository

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	// List filtra por tipo (GODOWN/SHOP) si locationType no es vacío.
	List(ctx context.Context, locationType string, limit, offset int) ([]*entity.Location, error)
	Delete(ctx context.Context, id string) error
}
