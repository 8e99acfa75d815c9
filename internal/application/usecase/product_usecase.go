package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca aquí: vive en el inventario por ubicación.
type ProductUseCase struct {
	repo         repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, brandRepo: brandRepo, categoryRepo: categoryRepo}
}

// build valida la entrada y que marca y categoría existan.
func (uc *ProductUseCase) build(ctx context.Context, id string, in dto.ProductRequest) (*entity.Product, error) {
	p := &entity.Product{
		ID:          id,
		BrandID:     strings.TrimSpace(in.BrandID),
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price.Round(2),
	}
	if p.Code == "" || len(p.Code) > 50 || p.Name == "" || len(p.Name) > 200 || p.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	brand, err := uc.brandRepo.GetByID(ctx, p.BrandID)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	if brand == nil || category == nil {
		return nil, domain.ErrInvalidInput
	}
	return p, nil
}

// Create crea un producto. Código repetido -> ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.build(ctx, uuid.New().String(), in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, p.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Update reemplaza los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if p.Code != current.Code {
		other, err := uc.repo.GetByCode(ctx, p.Code)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista productos por código.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: pageOf(page, len(items))}, nil
}

// Delete elimina el producto. Si está referenciado devuelve ErrConflict y no borra nada.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}
