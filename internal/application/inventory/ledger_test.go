package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
	"github.com/jhoicas/tiles-api/internal/infrastructure/memory"
	"github.com/jhoicas/tiles-api/pkg/logger"
)

const (
	godown = "loc-godown"
	shop   = "loc-shop"
	outlet = "loc-outlet"
	tile   = "prod-kj01"
)

type fixture struct {
	store  *memory.Store
	ledger *inventory.Ledger
}

func newFixture(t *testing.T, allowNegative bool) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Brands().Create(ctx, &entity.Brand{ID: "b1", Name: "Kajaria"}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Wall", Size: entity.TileSize1200x600}))
	for _, l := range []entity.Location{
		{ID: godown, Name: "Godown", Type: entity.LocationTypeGodown},
		{ID: shop, Name: "Shop", Type: entity.LocationTypeShop},
		{ID: outlet, Name: "Outlet", Type: entity.LocationTypeShop},
	} {
		l := l
		require.NoError(t, s.Locations().Create(ctx, &l))
	}
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: tile, BrandID: "b1", CategoryID: "c1", Code: "KJ-01", Name: "Statuario", Price: decimal.RequireFromString("52.50"),
	}))
	return &fixture{
		store:  s,
		ledger: newLedger(s, s, allowNegative),
	}
}

func newLedger(s *memory.Store, runner inventory.TxRunner, allowNegative bool) *inventory.Ledger {
	return inventory.NewLedger(runner, s.Locations(), s.Movements(),
		inventory.LedgerConfig{AllowNegative: allowNegative}, logger.Nop().Component("ledger"))
}

func (f *fixture) stock(t *testing.T, locationID string, qty int64) {
	t.Helper()
	require.NoError(t, f.store.Inventory().Create(context.Background(),
		&entity.InventoryRecord{ProductID: tile, LocationID: locationID, Quantity: qty}))
}

func (f *fixture) qty(t *testing.T, locationID string) (int64, bool) {
	t.Helper()
	rec, err := f.store.Inventory().Get(context.Background(), tile, locationID)
	require.NoError(t, err)
	if rec == nil {
		return 0, false
	}
	return rec.Quantity, true
}

func transfer(from, to string, q int64) inventory.ApplyMovementInput {
	return inventory.ApplyMovementInput{ProductID: tile, FromLocationID: from, ToLocationID: to, Quantity: q}
}

func TestLedger_TrasladoYReversionBodegaTienda(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 100)
	ctx := context.Background()

	m, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 30))
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, int64(30), m.Quantity)

	q, _ := f.qty(t, godown)
	assert.Equal(t, int64(70), q)
	q, ok := f.qty(t, shop)
	assert.True(t, ok, "el destino se crea con el traslado")
	assert.Equal(t, int64(30), q)

	stored, err := f.ledger.GetMovement(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ProductID, stored.ProductID)

	reversed, err := f.ledger.ReverseMovement(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, reversed.ID)

	q, _ = f.qty(t, godown)
	assert.Equal(t, int64(100), q)
	q, ok = f.qty(t, shop)
	assert.True(t, ok, "el destino se conserva en cero")
	assert.Equal(t, int64(0), q)

	_, err = f.ledger.GetMovement(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestLedger_DobleReversion(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 10)
	ctx := context.Background()

	m, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 4))
	require.NoError(t, err)
	_, err = f.ledger.ReverseMovement(ctx, m.ID)
	require.NoError(t, err)

	_, err = f.ledger.ReverseMovement(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
	q, _ := f.qty(t, godown)
	assert.Equal(t, int64(10), q)
}

func TestLedger_ValidacionDeEntrada(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 10)
	ctx := context.Background()

	tests := []struct {
		name string
		in   inventory.ApplyMovementInput
		want error
	}{
		{"cantidad cero", transfer(godown, shop, 0), domain.ErrInvalidQuantity},
		{"cantidad negativa", transfer(godown, shop, -5), domain.ErrInvalidQuantity},
		{"misma ubicación", transfer(godown, godown, 1), domain.ErrInvalidTransfer},
		{"sin producto", inventory.ApplyMovementInput{FromLocationID: godown, ToLocationID: shop, Quantity: 1}, domain.ErrInvalidInput},
		{"origen sin inventario", transfer(outlet, shop, 1), domain.ErrSourceNotFound},
		{"destino inexistente", transfer(godown, "loc-missing", 1), domain.ErrNotFound},
		// godown < shop: el origen se bloquea primero
		{"producto inexistente, origen primero",
			inventory.ApplyMovementInput{ProductID: "prod-missing", FromLocationID: godown, ToLocationID: shop, Quantity: 1},
			domain.ErrSourceNotFound},
		// shop > godown: el destino se bloquea primero
		{"producto inexistente, destino primero",
			inventory.ApplyMovementInput{ProductID: "prod-missing", FromLocationID: shop, ToLocationID: godown, Quantity: 1},
			domain.ErrSourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.ApplyMovement(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	q, _ := f.qty(t, godown)
	assert.Equal(t, int64(10), q)
	_, ok := f.qty(t, shop)
	assert.False(t, ok, "un traslado rechazado no crea el destino")
	movs, err := f.ledger.ListMovements(ctx, repository.MovementFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestLedger_OrigenFaltanteNoCreaDestino(t *testing.T) {
	f := newFixture(t, true)
	// outlet < shop en orden de ID: el destino se bloquea primero y debe descartarse
	_, err := f.ledger.ApplyMovement(context.Background(), transfer(shop, outlet, 3))
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
	_, ok := f.qty(t, outlet)
	assert.False(t, ok)
}

func TestLedger_ReversionInexistente(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.ledger.ReverseMovement(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
	_, err = f.ledger.ReverseMovement(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestLedger_ReversionConInventarioFaltante(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 50)
	ctx := context.Background()

	m, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 20))
	require.NoError(t, err)

	src, err := f.store.Inventory().Get(ctx, tile, godown)
	require.NoError(t, err)
	require.NoError(t, f.store.Inventory().Delete(ctx, src.ID))

	_, err = f.ledger.ReverseMovement(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrInconsistentState)

	_, err = f.ledger.GetMovement(ctx, m.ID)
	assert.NoError(t, err, "el movimiento sigue registrado")
	q, _ := f.qty(t, shop)
	assert.Equal(t, int64(20), q)
}

func TestLedger_StockNegativoPermitido(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 10)

	_, err := f.ledger.ApplyMovement(context.Background(), transfer(godown, shop, 30))
	require.NoError(t, err)
	q, _ := f.qty(t, godown)
	assert.Equal(t, int64(-20), q)

	audit := inventory.NewStockAudit(f.store.Inventory(), logger.Nop().Component("audit"))
	negative, err := audit.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, negative, 1)
	assert.Equal(t, godown, negative[0].LocationID)
}

func TestLedger_StockNegativoRechazado(t *testing.T) {
	f := newFixture(t, false)
	f.stock(t, godown, 10)
	ctx := context.Background()

	_, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 11))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	q, _ := f.qty(t, godown)
	assert.Equal(t, int64(10), q)

	m, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 10))
	require.NoError(t, err)

	// la tienda vende parte; revertir dejaría el destino negativo
	dst, err := f.store.Inventory().Get(ctx, tile, shop)
	require.NoError(t, err)
	require.NoError(t, f.store.Inventory().UpdateQuantity(ctx, dst.ID, 5))

	_, err = f.ledger.ReverseMovement(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	q, _ = f.qty(t, godown)
	assert.Equal(t, int64(0), q)
}

func TestLedger_ConservacionBajoConcurrencia(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 500)
	f.stock(t, shop, 500)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const n = 100
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := godown, shop
			if i%2 == 1 {
				from, to = shop, godown
			}
			_, err := f.ledger.ApplyMovement(ctx, transfer(from, to, int64(i%7+1)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	g, _ := f.qty(t, godown)
	s, _ := f.qty(t, shop)
	assert.Equal(t, int64(1000), g+s)

	var expected int64 = 500
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			expected -= int64(i%7 + 1)
		} else {
			expected += int64(i%7 + 1)
		}
	}
	assert.Equal(t, expected, g)

	movs, err := f.ledger.ListMovements(ctx, repository.MovementFilter{ProductID: tile}, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, movs, n)
}

func TestLedger_ReversionesConcurrentesDelMismoMovimiento(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 40)
	ctx := context.Background()
	m, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 15))
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.ReverseMovement(ctx, m.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, notFound := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrMovementNotFound):
			notFound++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, notFound)
	q, _ := f.qty(t, godown)
	assert.Equal(t, int64(40), q)
}

// failingRunner envuelve el store y hace fallar la inserción del movimiento.
type failingRunner struct {
	store *memory.Store
	err   error
}

func (r failingRunner) Run(ctx context.Context, fn func(repository.InventoryRepository, repository.StockMovementRepository) error) error {
	return r.store.Run(ctx, func(inv repository.InventoryRepository, mov repository.StockMovementRepository) error {
		return fn(inv, failingMovements{StockMovementRepository: mov, err: r.err})
	})
}

type failingMovements struct {
	repository.StockMovementRepository
	err error
}

func (m failingMovements) Create(context.Context, *entity.StockMovement) error { return m.err }
func (m failingMovements) Delete(context.Context, string) error                 { return m.err }

func TestLedger_FallaDeAlmacenamientoHaceRollback(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 100)
	ctx := context.Background()

	m, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 30))
	require.NoError(t, err)

	connErr := errors.New("connection reset")
	broken := newLedger(f.store, failingRunner{store: f.store, err: connErr}, true)

	_, err = broken.ApplyMovement(ctx, transfer(godown, shop, 5))
	require.ErrorIs(t, err, domain.ErrStorage)
	require.ErrorIs(t, err, connErr)
	var se *domain.StorageError
	assert.ErrorAs(t, err, &se)

	_, err = broken.ReverseMovement(ctx, m.ID)
	require.ErrorIs(t, err, domain.ErrStorage)

	g, _ := f.qty(t, godown)
	s, _ := f.qty(t, shop)
	assert.Equal(t, int64(70), g)
	assert.Equal(t, int64(30), s)
	_, err = f.ledger.GetMovement(ctx, m.ID)
	assert.NoError(t, err)
}

func TestLedger_ListarMovimientosPorUbicacion(t *testing.T) {
	f := newFixture(t, true)
	f.stock(t, godown, 100)
	ctx := context.Background()

	_, err := f.ledger.ApplyMovement(ctx, transfer(godown, shop, 10))
	require.NoError(t, err)
	_, err = f.ledger.ApplyMovement(ctx, transfer(godown, outlet, 5))
	require.NoError(t, err)

	list, err := f.ledger.ListMovements(ctx, repository.MovementFilter{LocationID: outlet}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(5), list[0].Quantity)

	list, err = f.ledger.ListMovements(ctx, repository.MovementFilter{LocationID: godown}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
