package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
	"github.com/jhoicas/tiles-api/internal/infrastructure/memory"
)

func TestInventoryUseCase_StockInicial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	brands := usecase.NewBrandUseCase(store.Brands())
	cats := usecase.NewCategoryUseCase(store.Categories())
	locs := usecase.NewLocationUseCase(store.Locations())
	prods := usecase.NewProductUseCase(store.Products(), store.Brands(), store.Categories())
	inv := usecase.NewInventoryUseCase(store.Inventory(), store.Products(), store.Locations())

	b, err := brands.Create(ctx, dto.BrandRequest{Name: "Kajaria"})
	require.NoError(t, err)
	c, err := cats.Create(ctx, dto.CategoryRequest{Name: "Wall", Size: "1200x600"})
	require.NoError(t, err)
	godown, err := locs.Create(ctx, dto.LocationRequest{Name: "Main godown", Type: "godown"})
	require.NoError(t, err)
	assert.Equal(t, "GODOWN", godown.Type)
	p, err := prods.Create(ctx, dto.ProductRequest{BrandID: b.ID, CategoryID: c.ID, Code: "KJ-01", Name: "Statuario", Price: decimal.NewFromInt(50)})
	require.NoError(t, err)

	rec, err := inv.Create(ctx, dto.CreateInventoryRequest{ProductID: p.ID, LocationID: godown.ID, Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.Quantity)

	_, err = inv.Create(ctx, dto.CreateInventoryRequest{ProductID: p.ID, LocationID: godown.ID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = inv.Create(ctx, dto.CreateInventoryRequest{ProductID: p.ID, LocationID: godown.ID, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = inv.Create(ctx, dto.CreateInventoryRequest{ProductID: "nope", LocationID: godown.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := inv.List(ctx, repository.InventoryFilter{LocationID: godown.ID}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, dto.DefaultLimit, list.Page.Limit)

	// con inventario el producto y la categoría no se pueden borrar
	assert.ErrorIs(t, prods.Delete(ctx, p.ID), domain.ErrConflict)
	assert.ErrorIs(t, cats.Delete(ctx, c.ID), domain.ErrConflict)

	require.NoError(t, inv.Delete(ctx, rec.ID))
	_, err = inv.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, prods.Delete(ctx, p.ID))
}

func TestLocationUseCase_FiltroPorTipo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	locs := usecase.NewLocationUseCase(store.Locations())
	_, err := locs.Create(ctx, dto.LocationRequest{Name: "B godown", Type: "GODOWN"})
	require.NoError(t, err)
	_, err = locs.Create(ctx, dto.LocationRequest{Name: "A shop", Type: "SHOP"})
	require.NoError(t, err)
	_, err = locs.Create(ctx, dto.LocationRequest{Name: "Warehouse", Type: "DEPOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := locs.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "A shop", all.Items[0].Name)

	shops, err := locs.List(ctx, "shop", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, shops.Items, 1)
	assert.Equal(t, "SHOP", shops.Items[0].Type)

	_, err = locs.List(ctx, "moon", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
