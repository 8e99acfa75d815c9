package repository

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand (DIP).
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	List(ctx context.Context, limit, offset int) ([]*entity.Brand, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Delete devuelve domain.ErrConflict si el producto está referenciado por inventario, movimientos o ventas.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
