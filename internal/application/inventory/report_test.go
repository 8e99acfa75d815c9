package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

func TestStockReport_UmbralPorDefecto(t *testing.T) {
	f := newFixture(t, true)
	report := inventory.NewStockReport(f.store.Reports(), f.store.Movements(), 0)
	assert.Equal(t, inventory.DefaultLowStockThreshold, report.Threshold())
}

func TestStockReport_LowStock(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.stock(t, godown, 10) // en el umbral: no es bajo stock
	f.stock(t, shop, 3)
	f.stock(t, outlet, -2)
	report := inventory.NewStockReport(f.store.Reports(), f.store.Movements(), 10)

	out, err := report.LowStock(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Threshold)
	require.Len(t, out.Items, 2)
	assert.Equal(t, outlet, out.Items[0].LocationID, "menor cantidad primero")
	assert.Equal(t, int64(-2), out.Items[0].Quantity)
	assert.Equal(t, "Outlet", out.Items[0].LocationName)
	assert.Equal(t, "KJ-01", out.Items[0].ProductCode)
	assert.Equal(t, "Statuario", out.Items[0].ProductName)
	assert.Equal(t, shop, out.Items[1].LocationID)

	out, err = report.LowStock(ctx, " "+shop+" ", 0, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, shop, out.Items[0].LocationID)

	out, err = report.LowStock(ctx, "", 11, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)

	out, err = report.LowStock(ctx, "", 0, 1)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	_, err = report.LowStock(ctx, "", -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockReport_Summary(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.store.Categories().Create(ctx, &entity.Category{ID: "c2", Name: "Floor", Size: entity.TileSize600x600}))
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{
		ID: "prod-fl02", BrandID: "b1", CategoryID: "c2", Code: "FL-02", Name: "Onyx", Price: decimal.RequireFromString("40"),
	}))
	f.stock(t, godown, 100)
	require.NoError(t, f.store.Inventory().Create(ctx, &entity.InventoryRecord{ProductID: "prod-fl02", LocationID: godown, Quantity: 8}))

	_, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 30))
	require.NoError(t, err)

	report := inventory.NewStockReport(f.store.Reports(), f.store.Movements(), 10)
	sum, err := report.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(108), sum.TotalStock)
	assert.Equal(t, int64(10), sum.Threshold)

	require.Len(t, sum.ByLocation, 3)
	byName := map[string]int64{}
	for _, l := range sum.ByLocation {
		byName[l.Name] = l.Quantity
	}
	assert.Equal(t, map[string]int64{"Godown": 78, "Outlet": 0, "Shop": 30}, byName, "ubicaciones sin registros salen en 0")

	require.Len(t, sum.BySize, 2)
	assert.Equal(t, entity.TileSize1200x600, sum.BySize[0].Key)
	assert.Equal(t, int64(100), sum.BySize[0].Quantity)
	assert.Equal(t, entity.TileSize600x600, sum.BySize[1].Key)
	assert.Equal(t, int64(8), sum.BySize[1].Quantity)

	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, "FL-02", sum.LowStock[0].ProductCode)
	require.Len(t, sum.RecentMovements, 1)
	assert.Equal(t, int64(30), sum.RecentMovements[0].Quantity)
}

// brokenReports simula una caída del almacenamiento en las consultas del tablero.
type brokenReports struct{ err error }

func (b brokenReports) ListBelow(context.Context, int64, string, int) ([]repository.LowStockItem, error) {
	return nil, b.err
}

func (b brokenReports) TotalsByLocation(context.Context) ([]repository.StockTotal, error) {
	return nil, b.err
}

func (b brokenReports) TotalsBySize(context.Context) ([]repository.StockTotal, error) {
	return nil, b.err
}

func TestStockReport_ErrorDeAlmacenamiento(t *testing.T) {
	f := newFixture(t, true)
	down := errors.New("connection refused")
	report := inventory.NewStockReport(brokenReports{err: down}, f.store.Movements(), 10)

	_, err := report.Summary(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, down)

	_, err = report.LowStock(context.Background(), "", 0, 0)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
