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

// BrandUseCase casos de uso CRUD para marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create crea una marca.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Brand{ID: uuid.New().String(), Name: name, Description: in.Description}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// GetByID obtiene una marca; ErrNotFound si no existe.
func (uc *BrandUseCase) GetByID(ctx context.Context, id string) (*dto.BrandResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBrandResponse(b), nil
}

// Update reemplaza nombre y descripción.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return nil, domain.ErrInvalidInput
	}
	b.Name = name
	b.Description = in.Description
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// List lista marcas ordenadas por nombre.
func (uc *BrandUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.BrandListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return &dto.BrandListResponse{Items: items, Page: pageOf(page, len(items))}, nil
}

// Delete elimina la marca. Con productos asociados -> ErrConflict.
func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, Description: b.Description}
}

// CategoryUseCase casos de uso CRUD para categorías de baldosa.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func validateCategory(in dto.CategoryRequest) (name string, err error) {
	name = strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 || !entity.IsValidTileSize(in.Size) {
		return "", domain.ErrInvalidInput
	}
	return name, nil
}

// Create crea una categoría. Size debe ser 1200x600 o 600x600.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := validateCategory(in)
	if err != nil {
		return nil, err
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, Size: in.Size, Description: in.Description}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name, err := validateCategory(in)
	if err != nil {
		return nil, err
	}
	c.Name, c.Size, c.Description = name, in.Size, in.Description
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items, Page: pageOf(page, len(items))}, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Size: c.Size, Description: c.Description}
}

func pageOf(page dto.PageRequest, count int) dto.PageResponse {
	return dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: count}
}
