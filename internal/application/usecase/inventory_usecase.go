package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// InventoryUseCase registros de inventario por (producto, ubicación): stock inicial, consulta y baja.
// Las cantidades solo cambian después vía traslados del libro.
type InventoryUseCase struct {
	repo         repository.InventoryRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	repo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, productRepo: productRepo, locationRepo: locationRepo}
}

// Create registra el stock inicial. Ya existente -> ErrDuplicate.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	locationID := strings.TrimSpace(in.LocationID)
	if productID == "" || locationID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if product == nil || location == nil {
		return nil, domain.ErrInvalidInput
	}

	rec := &entity.InventoryRecord{ProductID: productID, LocationID: locationID, Quantity: in.Quantity}
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return toInventoryResponse(rec), nil
}

// GetByID obtiene un registro; ErrNotFound si no existe.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(rec), nil
}

// List lista registros filtrando opcionalmente por producto y ubicación.
func (uc *InventoryUseCase) List(ctx context.Context, filter repository.InventoryFilter, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toInventoryResponse(rec))
	}
	return &dto.InventoryListResponse{Items: items, Page: pageOf(page, len(items))}, nil
}

// Delete elimina el registro. Los movimientos que lo tocaron quedan y no podrán revertirse.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toInventoryResponse(rec *entity.InventoryRecord) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:          rec.ID,
		ProductID:   rec.ProductID,
		LocationID:  rec.LocationID,
		Quantity:    rec.Quantity,
		LastUpdated: rec.LastUpdated,
	}
}
