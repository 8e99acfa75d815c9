package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
	"github.com/jhoicas/tiles-api/pkg/config"
	"github.com/jhoicas/tiles-api/pkg/logger"
)

// openTestPool abre la BD de TEST_DATABASE_URL y aplica el esquema; sin la variable el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	return pool
}

type pgFixture struct {
	pool             *pgxpool.Pool
	productID        string
	godownID, shopID string
	ledger           *inventory.Ledger
	inventory        *InventoryRepo
}

func newPGFixture(t *testing.T) *pgFixture {
	pool := openTestPool(t)
	ctx := context.Background()
	f := &pgFixture{
		pool:      pool,
		productID: uuid.New().String(),
		godownID:  uuid.New().String(),
		shopID:    uuid.New().String(),
		inventory: NewInventoryRepository(pool),
	}
	brand := &entity.Brand{ID: uuid.New().String(), Name: "Somany"}
	cat := &entity.Category{ID: uuid.New().String(), Name: "Floor", Size: entity.TileSize600x600}
	require.NoError(t, NewBrandRepository(pool).Create(ctx, brand))
	require.NoError(t, NewCategoryRepository(pool).Create(ctx, cat))
	locations := NewLocationRepository(pool)
	require.NoError(t, locations.Create(ctx, &entity.Location{ID: f.godownID, Name: "Godown", Type: entity.LocationTypeGodown}))
	require.NoError(t, locations.Create(ctx, &entity.Location{ID: f.shopID, Name: "Shop", Type: entity.LocationTypeShop}))
	require.NoError(t, NewProductRepository(pool).Create(ctx, &entity.Product{
		ID: f.productID, BrandID: brand.ID, CategoryID: cat.ID, Code: "IT-" + f.productID[:8],
		Name: "Onyx", Price: decimal.RequireFromString("61.25"),
	}))

	f.ledger = inventory.NewLedger(NewTxRunner(pool), locations, NewStockMovementRepository(pool),
		inventory.LedgerConfig{AllowNegative: true}, logger.Nop().Component("ledger"))
	return f
}

func (f *pgFixture) qty(t *testing.T, locationID string) int64 {
	t.Helper()
	rec, err := f.inventory.Get(context.Background(), f.productID, locationID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.Quantity
}

func TestPostgres_TrasladoYReversion(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID, Quantity: 100}))

	m, err := f.ledger.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: f.productID, FromLocationID: f.godownID, ToLocationID: f.shopID, Quantity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(70), f.qty(t, f.godownID))
	assert.Equal(t, int64(30), f.qty(t, f.shopID))

	_, err = f.ledger.ReverseMovement(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), f.qty(t, f.godownID))
	assert.Equal(t, int64(0), f.qty(t, f.shopID))

	_, err = f.ledger.ReverseMovement(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestPostgres_TrasladosCruzadosSinDeadlock(t *testing.T) {
	f := newPGFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID, Quantity: 200}))
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.shopID, Quantity: 200}))

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := f.godownID, f.shopID
			if i%2 == 1 {
				from, to = to, from
			}
			_, err := f.ledger.ApplyMovement(ctx, inventory.ApplyMovementInput{
				ProductID: f.productID, FromLocationID: from, ToLocationID: to, Quantity: 3,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(200), f.qty(t, f.godownID))
	assert.Equal(t, int64(200), f.qty(t, f.shopID))
}

func TestPostgres_ProductoReferenciado(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID, Quantity: 1}))

	err := NewProductRepository(f.pool).Delete(ctx, f.productID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPostgres_OrigenFaltanteNoDejaDestino(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	// Las dos direcciones: según los UUID, una de ellas bloquea el destino primero.
	for _, pair := range [][2]string{{f.godownID, f.shopID}, {f.shopID, f.godownID}} {
		_, err := f.ledger.ApplyMovement(ctx, inventory.ApplyMovementInput{
			ProductID: f.productID, FromLocationID: pair[0], ToLocationID: pair[1], Quantity: 5,
		})
		require.ErrorIs(t, err, domain.ErrSourceNotFound)

		rec, err := f.inventory.Get(ctx, f.productID, pair[1])
		require.NoError(t, err)
		assert.Nil(t, rec, "un traslado rechazado no crea el destino")
	}
}

func TestPostgres_RollbackDescartaDestinoCreado(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID, Quantity: 2}))

	strict := inventory.NewLedger(NewTxRunner(f.pool), NewLocationRepository(f.pool), NewStockMovementRepository(f.pool),
		inventory.LedgerConfig{AllowNegative: false}, logger.Nop().Component("ledger"))

	// El destino se inserta en 0 antes de validar la cantidad; el rollback debe descartarlo.
	_, err := strict.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: f.productID, FromLocationID: f.godownID, ToLocationID: f.shopID, Quantity: 5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(2), f.qty(t, f.godownID))
	rec, err := f.inventory.Get(ctx, f.productID, f.shopID)
	require.NoError(t, err)
	assert.Nil(t, rec)

	movs, err := f.ledger.ListMovements(ctx, repository.MovementFilter{ProductID: f.productID}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestPostgres_IDsMalformados(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID, Quantity: 10}))

	_, err := f.ledger.ReverseMovement(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)

	_, err = f.ledger.GetMovement(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)

	apply := func(productID, from, to string) error {
		_, err := f.ledger.ApplyMovement(ctx, inventory.ApplyMovementInput{
			ProductID: productID, FromLocationID: from, ToLocationID: to, Quantity: 1,
		})
		return err
	}
	assert.ErrorIs(t, apply("abc", f.godownID, f.shopID), domain.ErrSourceNotFound)
	assert.ErrorIs(t, apply(f.productID, "abc", f.shopID), domain.ErrSourceNotFound)
	assert.ErrorIs(t, apply(f.productID, f.godownID, "abc"), domain.ErrNotFound)

	movs, err := f.ledger.ListMovements(ctx, repository.MovementFilter{ProductID: "abc"}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	assert.ErrorIs(t, NewProductRepository(f.pool).Delete(ctx, "abc"), domain.ErrNotFound)
	loc, err := NewLocationRepository(f.pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, loc)
	assert.Equal(t, int64(10), f.qty(t, f.godownID))
}

func TestPostgres_ReporteBajoStock(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	require.NoError(t, f.inventory.Create(ctx, &entity.InventoryRecord{ProductID: f.productID, LocationID: f.godownID, Quantity: 100}))
	_, err := f.ledger.ApplyMovement(ctx, inventory.ApplyMovementInput{
		ProductID: f.productID, FromLocationID: f.godownID, ToLocationID: f.shopID, Quantity: 97,
	})
	require.NoError(t, err)

	reports := NewStockReportRepository(f.pool)
	low, err := reports.ListBelow(ctx, 10, f.godownID, 20)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, int64(3), low[0].Quantity)
	assert.Equal(t, "Godown", low[0].LocationName)

	low, err = reports.ListBelow(ctx, 10, "abc", 20)
	require.NoError(t, err)
	assert.Empty(t, low)

	byLocation, err := reports.TotalsByLocation(ctx)
	require.NoError(t, err)
	totals := map[string]int64{}
	for _, tt := range byLocation {
		totals[tt.Key] = tt.Quantity
	}
	assert.Equal(t, int64(3), totals[f.godownID])
	assert.Equal(t, int64(97), totals[f.shopID])

	bySize, err := reports.TotalsBySize(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, bySize)
}
