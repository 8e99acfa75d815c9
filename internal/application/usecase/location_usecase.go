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

// LocationUseCase casos de uso CRUD para bodegas y tiendas.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

func buildLocation(id string, in dto.LocationRequest) (*entity.Location, error) {
	l := &entity.Location{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Type:          strings.ToUpper(strings.TrimSpace(in.Type)),
		Address:       in.Address,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
	}
	if l.Name == "" || len(l.Name) > 100 || len(l.ContactNumber) > 15 || !entity.IsValidLocationType(l.Type) {
		return nil, domain.ErrInvalidInput
	}
	return l, nil
}

// Create crea una ubicación (GODOWN o SHOP).
func (uc *LocationUseCase) Create(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	l, err := buildLocation(uuid.New().String(), in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

// GetByID obtiene una ubicación; ErrNotFound si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(l), nil
}

// Update reemplaza los datos de la ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.LocationRequest) (*dto.LocationResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	l, err := buildLocation(id, in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

// List lista ubicaciones; locationType vacío no filtra.
func (uc *LocationUseCase) List(ctx context.Context, locationType string, page dto.PageRequest) (*dto.LocationListResponse, error) {
	locationType = strings.ToUpper(strings.TrimSpace(locationType))
	if locationType != "" && !entity.IsValidLocationType(locationType) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, locationType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items, Page: pageOf(page, len(items))}, nil
}

// Delete elimina la ubicación. Con inventario, movimientos o ventas -> ErrConflict.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:            l.ID,
		Name:          l.Name,
		Type:          l.Type,
		Address:       l.Address,
		ContactNumber: l.ContactNumber,
	}
}
